// The main package for the cusreport executable.
package main

import (
	"github.com/JakeFAU/cus-report/cmd"
)

func main() {
	cmd.Execute()
}
