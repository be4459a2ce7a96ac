package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/minutia-lab/minutia/pkg/domain/types"
)

func cmdMeetings() *cli.Command {
	var svc services
	var deleteID string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "delete",
			Usage:       "Delete the meeting with this ID instead of listing",
			Destination: &deleteID,
		},
	}
	flags = append(flags, svc.Flags()...)

	return &cli.Command{
		Name:  "meetings",
		Usage: "List indexed meetings, or delete one",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closer, err := svc.build(ctx)
			if err != nil {
				return err
			}
			defer closer()

			if deleteID != "" {
				if err := uc.DeleteMeeting(ctx, types.MeetingID(deleteID)); err != nil {
					return err
				}
				fmt.Printf("Deleted %s\n", deleteID)
				return nil
			}

			refs, err := uc.ListMeetings(ctx)
			if err != nil {
				return err
			}

			if len(refs) == 0 {
				fmt.Println("No meetings indexed yet.")
				return nil
			}

			idColor := color.New(color.FgCyan)
			for _, ref := range refs {
				fmt.Printf("%s  %s (%s)\n", idColor.Sprint(ref.ID), ref.Title, ref.Date)
			}

			return nil
		},
	}
}
