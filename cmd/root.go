package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/jsphweid/chordwav/constants"
	"github.com/jsphweid/chordwav/logger"
	"github.com/spf13/cobra"
)

// set via ldflags
var releaseVersion = "dev"

var flushLogs = func() {}

var rootCmd = &cobra.Command{
	Use:          "chordwav",
	Short:        "Renders chord progressions to audio",
	Long:         `Turns chords written as note names ("C4 E4 G4") into a MIDI track and renders it to WAV with a SoundFont.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
		flushLogs = logger.Init(constants.GetSentryDSN(), "chordwav@"+releaseVersion)
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	flushLogs()
	cobra.CheckErr(err)
}
