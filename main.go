// Chromamood as a command line tool (CLI) is documented in the project's README:
// https://github.com/richienod0llar/chromamood#readme
package main

import (
	"os"

	"github.com/richienod0llar/chromamood/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
