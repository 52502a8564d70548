// Gantry is a pipeline definition processor.
//
// Gantry parses a YAML pipeline definition into stages and jobs and decides,
// for a given branch or tag ref, which jobs should run.
package main

import (
	"github.com/opnlabs/gantry/cmd/gantry"
)

func main() {
	gantry.Execute()
}
