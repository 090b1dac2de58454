// File: main.go
package main

import "github.com/xkilldash9x/gridcore/cmd"

func main() {
	cmd.Execute()
}
