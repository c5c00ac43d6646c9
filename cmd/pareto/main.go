package main

import (
	"os"

	"k8s.io/component-base/cli"

	"github.com/mihai-snyk/pareto/cmd/pareto/app"
)

func main() {
	command := app.NewParetoCommand()
	code := cli.Run(command)
	os.Exit(code)
}
