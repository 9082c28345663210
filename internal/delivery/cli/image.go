package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

var imageOutputFlag string

// NewImageCmd creates the image subcommand
func NewImageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image <url>",
		Short: "Fetch an image through the cache",
		Args:  cobra.ExactArgs(1),
		RunE:  runImage,
	}

	cmd.Flags().StringVarP(&imageOutputFlag, "output", "o", "", "Write the image to this file instead of stdout")

	return cmd
}

func runImage(cmd *cobra.Command, args []string) error {
	app, err := NewApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	data, err := app.Images.FetchImage(cmd.Context(), args[0])
	if data == nil {
		return err
	}
	if err != nil {
		app.Log.Warn("image fetched but not cached", "error", err)
	}

	if imageOutputFlag == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(imageOutputFlag, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", imageOutputFlag, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s  %s  %s\n",
		imageOutputFlag, http.DetectContentType(data), formatSize(int64(len(data))))
	return nil
}
