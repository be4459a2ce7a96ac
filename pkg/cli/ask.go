package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/minutia-lab/minutia/pkg/domain/types"
)

func cmdAsk() *cli.Command {
	var svc services
	var meetingID string
	var contextLimit int

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "meeting",
			Usage:       "Restrict retrieval to one meeting ID",
			Destination: &meetingID,
		},
		&cli.IntFlag{
			Name:        "context",
			Usage:       "Number of transcript chunks to retrieve",
			Destination: &contextLimit,
		},
	}
	flags = append(flags, svc.Flags()...)

	return &cli.Command{
		Name:      "ask",
		Usage:     "Ask a question over the indexed meetings",
		ArgsUsage: "QUESTION...",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() == 0 {
				return goerr.New("a question argument is required")
			}
			question := strings.Join(c.Args().Slice(), " ")

			uc, closer, err := svc.build(ctx)
			if err != nil {
				return err
			}
			defer closer()

			answer, err := uc.Ask(ctx, question, contextLimit, types.MeetingID(meetingID))
			if err != nil {
				return err
			}

			color.New(color.FgGreen, color.Bold).Println("Answer")
			fmt.Println(answer.Answer)

			if len(answer.Citations) > 0 {
				fmt.Println()
				color.New(color.FgCyan, color.Bold).Println("Citations")
				for _, citation := range answer.Citations {
					fmt.Printf("  - %s (%s) chunk %d\n", citation.Title, citation.Date, citation.ChunkIndex)
				}
			}

			return nil
		},
	}
}
