// Command nghint lints AngularJS directive usage in HTML templates.
package main

import (
	"os"

	"github.com/lex00/nghint/cmd"
	"github.com/lex00/nghint/rules"
)

func main() {
	os.Exit(cmd.Run(cmd.NewApp(rules.Default()), os.Stderr))
}
