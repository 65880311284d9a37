// The main package for the wodbot executable.
package main

import "github.com/wodbot/wodbot/cmd"

func main() {
	cmd.Execute()
}
