package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dtrue/taxmate/analytics"
	"github.com/dtrue/taxmate/faq"
)

func newInsightsCommand(opts *options) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Summarize page views, FAQ opens, and signups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if days <= 0 {
				return fmt.Errorf("--days must be positive, got %d", days)
			}
			path := opts.env.AnalyticsPath
			if path == "" {
				path = filepath.Join(filepath.Dir(opts.env.DatabasePath), "analytics.db")
			}
			s, err := analytics.NewStore(path)
			if err != nil {
				return err
			}
			defer s.Close()

			now := time.Now()
			sum, err := s.Summary(cmd.Context(), now.AddDate(0, 0, -days), now.Add(time.Second))
			if err != nil {
				return err
			}
			return writeInsights(cmd.OutOrStdout(), sum, days, faq.Default())
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "Number of days to summarize")
	return cmd
}

func writeInsights(w io.Writer, s analytics.Summary, days int, entries []faq.Entry) error {
	question := func(key string) string {
		if i, err := strconv.Atoi(key); err == nil && i >= 0 && i < len(entries) {
			return entries[i].Question
		}
		return "#" + key
	}

	fmt.Fprintf(w, "last %d days\n", days)
	fmt.Fprintf(w, "views: %d\nvisitors: %d\nsignups: %d\n", s.Views, s.Visitors, s.Signups)
	fmt.Fprintf(w, "conversion: %.1f%%\n", s.ConversionRate()*100)
	for _, sec := range []struct {
		title  string
		counts []analytics.Count
		label  func(string) string
	}{
		{"faq opens", s.FAQOpens, question},
		{"referrers", s.Referrers, nil},
		{"devices", s.Devices, nil},
	} {
		if len(sec.counts) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s:\n", sec.title)
		for _, c := range sec.counts {
			key := c.Key
			if sec.label != nil {
				key = sec.label(key)
			}
			fmt.Fprintf(w, "  %5d  %s\n", c.N, key)
		}
	}
	return nil
}
