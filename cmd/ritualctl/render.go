package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/ritual-service/internal/adapters/pdf"
	"github.com/jsamuelsen/ritual-service/internal/domain"
)

func newRenderCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render RITUAL.json",
		Short: "Render a stored ritual JSON document to PDF",
		Long:  "Reads a ritual as returned by GET /api/v1/results/:id (or its \"ritual\" field) and writes the PDF. Use - for stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()

			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()

				in = f
			}

			ritual, err := decodeRitual(in)
			if err != nil {
				return err
			}

			doc, err := pdf.NewRenderer(pdf.Options{}).RenderRitual(ritual)
			if err != nil {
				return err
			}

			if output == "" {
				output = strings.TrimSuffix(args[0], ".json") + ".pdf"
				if args[0] == "-" {
					output = "ritual.pdf"
				}
			}

			if err := os.WriteFile(output, doc, 0o644); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", output, len(doc))

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "PDF path (default: input name with .pdf)")

	return cmd
}

// decodeRitual accepts a bare ritual or a result envelope with a "ritual" field.
func decodeRitual(r io.Reader) (*domain.Ritual, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Ritual *domain.Ritual `json:"ritual"`
	}

	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decoding ritual: %w", err)
	}

	if envelope.Ritual != nil && envelope.Ritual.IsComplete() {
		return envelope.Ritual, nil
	}

	var ritual domain.Ritual
	if err := json.Unmarshal(raw, &ritual); err != nil {
		return nil, fmt.Errorf("decoding ritual: %w", err)
	}

	return &ritual, nil
}
