package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"bmitracker/internal/domain"
)

func (s *Shell) cmdCalc(args []string) error {
	fs := s.flags("calc")
	weight := fs.String("weight", "", "weight in kg")
	height := fs.String("height", "", "height in cm")
	if err := s.parse(fs, args); err != nil {
		return err
	}

	res, err := s.bmi.Calculate(*weight, *height)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "BMI: %.2f - %s (%s)\n", res.BMI, res.Category, res.Severity)
	return nil
}

func (s *Shell) cmdSave(ctx context.Context, args []string) error {
	fs := s.flags("save")
	user := fs.String("user", "", "username")
	weight := fs.String("weight", "", "weight in kg")
	height := fs.String("height", "", "height in cm")
	if err := s.parse(fs, args); err != nil {
		return err
	}

	obs, err := s.bmi.Save(ctx, *user, *weight, *height)
	if err != nil {
		return err
	}
	s.log.Debug("saved", "id", obs.ID)
	fmt.Fprint(s.out, "Record saved successfully.\n\n")
	return s.showHistory(ctx, "")
}

func (s *Shell) cmdHistory(ctx context.Context, args []string) error {
	fs := s.flags("history")
	user := fs.String("user", "", "only show this user's records")
	if err := s.parse(fs, args); err != nil {
		return err
	}
	return s.showHistory(ctx, *user)
}

func (s *Shell) showHistory(ctx context.Context, user string) error {
	var (
		items []domain.Observation
		err   error
	)
	if user == "" {
		items, err = s.bmi.History(ctx)
	} else {
		items, err = s.bmi.UserHistory(ctx, user)
	}
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(s.out, "No records found.")
		return nil
	}
	return writeHistory(s.out, items, user == "")
}

func (s *Shell) cmdDelete(ctx context.Context, args []string) error {
	fs := s.flags("delete")
	user := fs.String("user", "", "username")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := s.parse(fs, args); err != nil {
		return err
	}

	name, err := domain.ValidateUsername(*user)
	if err != nil {
		return err
	}

	if !*yes {
		fmt.Fprintf(s.out, "Are you sure you want to delete all history for '%s'? [y/N] ", name)
		answer, err := s.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read confirmation: %w", err)
		}
		if !confirmed(answer) {
			fmt.Fprintln(s.out, "Delete cancelled.")
			return nil
		}
	}

	if _, err := s.bmi.DeleteHistory(ctx, name); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "History deleted successfully.")
	return nil
}
