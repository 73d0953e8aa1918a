// =============================================================================
// Financial Statements Generator - Entry Point
// =============================================================================

package main

import "github.com/muhasib/financial-statements/cmd"

func main() {
	cmd.Execute()
}
