package main

import "github.com/jsphweid/chordwav/cmd"

func main() {
	cmd.Execute()
}
