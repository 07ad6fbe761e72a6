package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/ritual-service/internal/domain"
)

type signResult struct {
	DOB     string `json:"dob"`
	SunSign string `json:"sunSign"`
	Element string `json:"element"`
	Energy  string `json:"energy"`
}

func newSignCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sign YYYY-MM-DD...",
		Short: "Print the sun sign and element for birth dates",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]signResult, 0, len(args))

			for _, arg := range args {
				dob, err := domain.ParseBirthDate(arg)
				if err != nil {
					return err
				}

				sign := domain.ResolveSunSign(dob)
				element := domain.ResolveElement(sign)

				results = append(results, signResult{
					DOB:     dob.String(),
					SunSign: string(sign),
					Element: string(element),
					Energy:  element.Energy(),
				})
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")

				return enc.Encode(results)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, r := range results {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.DOB, r.SunSign, r.Element, r.Energy)
			}

			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}
