package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"bmitracker/internal/domain"
)

// report prints err the way the user should see it and passes it on.
func (s *Shell) report(err error) error {
	if err == nil {
		return nil
	}
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		s.log.Debug("input rejected", "field", verr.Field)
		fmt.Fprintln(s.out, verr.Message)
	case errors.Is(err, ErrUsage):
	default:
		s.log.Error("command failed", "error", err)
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
	return err
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeHistory(w io.Writer, items []domain.Observation, withUser bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{"Date", "Weight (kg)", "Height (cm)", "BMI"}
	if withUser {
		header = append([]string{"Username"}, header...)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, o := range items {
		row := []string{
			domain.FormatTimestamp(o.RecordedAt),
			formatNumber(o.WeightKg),
			formatNumber(o.HeightCm),
			domain.FormatBMI(o.BMI),
		}
		if withUser {
			row = append([]string{o.Username}, row...)
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func confirmed(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
