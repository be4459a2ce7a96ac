package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/minutia-lab/minutia/pkg/domain/types"
	"github.com/minutia-lab/minutia/pkg/usecase"
)

func cmdProcess() *cli.Command {
	var svc services
	var meetingID, title, date, language string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Meeting ID (auto-generated if omitted)",
			Destination: &meetingID,
		},
		&cli.StringFlag{
			Name:        "title",
			Usage:       "Meeting title (derived from the file name if omitted)",
			Destination: &title,
		},
		&cli.StringFlag{
			Name:        "date",
			Usage:       "Meeting date as YYYY-MM-DD (today if omitted)",
			Destination: &date,
		},
		&cli.StringFlag{
			Name:        "language",
			Usage:       "ISO-639-1 language hint for transcription",
			Destination: &language,
		},
	}
	flags = append(flags, svc.Flags()...)

	return &cli.Command{
		Name:      "process",
		Usage:     "Transcribe, summarize and index one meeting recording",
		ArgsUsage: "MEDIA_FILE",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("exactly one media file argument is required")
			}

			uc, closer, err := svc.build(ctx)
			if err != nil {
				return err
			}
			defer closer()

			result, err := uc.Process(ctx, usecase.ProcessInput{
				MediaPath: c.Args().First(),
				MeetingID: types.MeetingID(meetingID),
				Title:     title,
				Date:      date,
				Language:  language,
			})
			if err != nil {
				return err
			}

			heading := color.New(color.FgCyan, color.Bold)
			heading.Printf("%s (%s)\n", result.Title, result.Date)
			fmt.Printf("ID: %s, chunks stored: %d\n\n", result.MeetingID, result.ChunksStored)

			heading.Println("Summary")
			fmt.Println(result.Summary.Overview)

			printList(heading, "Key points", result.Summary.KeyPoints)
			printList(heading, "Action items", result.Summary.ActionItems)
			printList(heading, "Decisions", result.Summary.Decisions)

			return nil
		},
	}
}

func printList(heading *color.Color, name string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Println()
	heading.Println(name)
	for _, item := range items {
		fmt.Printf("  - %s\n", item)
	}
}
