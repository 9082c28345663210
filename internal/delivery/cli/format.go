package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/recipebox/backend/internal/domain"
	"github.com/recipebox/backend/internal/usecase"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	cuisineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// writeStructured writes v as JSON or YAML. It reports false for the text
// format so callers can fall back to their own rendering.
func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	case "", "text":
		return false, nil
	default:
		return true, fmt.Errorf("unknown format %q (use text, json or yaml)", format)
	}
}

func renderPage(w io.Writer, format string, page usecase.Page) error {
	if done, err := writeStructured(w, format, page); done {
		return err
	}

	if len(page.Recipes) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No recipes found"))
		return nil
	}

	width := 0
	for _, r := range page.Recipes {
		width = max(width, lipgloss.Width(r.Name))
	}

	for _, r := range page.Recipes {
		name := lipgloss.NewStyle().Width(width).Render(r.Name)
		fmt.Fprintf(w, "%s  %s\n", name, cuisineStyle.Render(r.Cuisine))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("Showing %d of %d recipes (page %d of %d)",
		len(page.Recipes), page.TotalCount, page.Page, page.TotalPages)))
	return nil
}

func renderCuisines(w io.Writer, format string, cuisines []string) error {
	if done, err := writeStructured(w, format, map[string][]string{"cuisines": cuisines}); done {
		return err
	}

	for _, c := range cuisines {
		fmt.Fprintln(w, cuisineStyle.Render(c))
	}
	return nil
}

func renderCacheStats(w io.Writer, format, dir string, stats domain.CacheStats) error {
	if done, err := writeStructured(w, format, stats); done {
		return err
	}

	available := "yes"
	if !stats.Available {
		available = "no"
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Image Cache:"))
	fmt.Fprintf(w, "  Dir:       %s\n", dir)
	fmt.Fprintf(w, "  Available: %s\n", available)
	fmt.Fprintf(w, "  Entries:   %d / %d\n", stats.EntryCount, stats.CountLimit)
	fmt.Fprintf(w, "  Size:      %s / %s\n", formatSize(stats.TotalBytes), formatSize(stats.ByteLimit))
	fmt.Fprintln(w)
	return nil
}

// formatSize formats a byte count with a binary unit suffix
// Examples: 512 -> "512 B", 1536 -> "1.5 KiB", 5242880 -> "5.0 MiB"
func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
