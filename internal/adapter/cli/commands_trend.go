package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"bmitracker/internal/domain"
)

func (s *Shell) cmdTrend(ctx context.Context, args []string) error {
	fs := s.flags("trend")
	user := fs.String("user", "", "username")
	pngPath := fs.String("png", "", "also render the chart to this PNG file")
	if err := s.parse(fs, args); err != nil {
		return err
	}

	tr, err := s.trend.Trend(ctx, *user)
	if err != nil {
		return err
	}
	if tr == nil {
		fmt.Fprintln(s.out, "No records found for this user.")
		return nil
	}

	fmt.Fprintf(s.out, "BMI Trend for %s\n", tr.Username)
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Date\tBMI")
	for _, p := range tr.Points {
		fmt.Fprintf(tw, "%s\t%s\n", domain.FormatTimestamp(p.RecordedAt), domain.FormatBMI(p.BMI))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Min BMI: %s\nMax BMI: %s\nAvg BMI: %s\n",
		domain.FormatBMI(tr.Min), domain.FormatBMI(tr.Max), domain.FormatBMI(tr.Avg))

	if *pngPath == "" {
		return nil
	}
	if s.charts == nil {
		return errors.New("chart rendering is not available")
	}
	f, err := os.Create(*pngPath)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := s.charts.Render(f, tr); err != nil {
		_ = f.Close()
		_ = os.Remove(*pngPath)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(*pngPath)
		return fmt.Errorf("write chart file: %w", err)
	}
	s.log.Debug("chart written", "path", *pngPath, "points", len(tr.Points))
	fmt.Fprintf(s.out, "Chart written to %s\n", *pngPath)
	return nil
}
