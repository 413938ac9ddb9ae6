package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sakif/diary/internal/legacy"
	"github.com/sakif/diary/internal/model"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every tag, template and entry as one document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return writeSnapshot(w, a.store.Snapshot(), format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}

func writeSnapshot(w io.Writer, snap model.Snapshot, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Load an export, or the browser app's saved data, into the diary",
		Long: `Import reads a file written by "diary export" (JSON or YAML) or the
JSON saved by the browser version of the diary, and writes every record
with its original id. Records that already exist are replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			snap, err := readSnapshot(raw, filepath.Ext(args[0]))
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			n, err := a.store.Import(cmd.Context(), *snap)
			if err != nil {
				return fmt.Errorf("imported %d records before failing: %w", n, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tags, %d templates and %d entries.\n",
				len(snap.Tags), len(snap.Templates), len(snap.Entries))
			return nil
		},
	}
}

// readSnapshot decodes an export document. JSON without a version field is
// treated as browser data and converted by the legacy package.
func readSnapshot(raw []byte, ext string) (*model.Snapshot, error) {
	if e := strings.ToLower(ext); e == ".yaml" || e == ".yml" {
		var snap model.Snapshot
		if err := yaml.Unmarshal(raw, &snap); err != nil {
			return nil, err
		}
		return checkVersion(&snap)
	}

	var header struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(raw, &header); err != nil {
		return nil, err
	}
	if header.Version == 0 {
		return legacy.Parse(bytes.NewReader(raw))
	}
	var snap model.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return checkVersion(&snap)
}

func checkVersion(snap *model.Snapshot) (*model.Snapshot, error) {
	if snap.Version != model.SnapshotVersion {
		return nil, fmt.Errorf("unsupported export version %d", snap.Version)
	}
	return snap, nil
}
