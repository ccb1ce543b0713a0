/*
Copyright © 2026 Krzysztof Grykiel
*/
package main

import "github.com/KGrykiel/eriast-derby/cmd"

func main() {
	cmd.Execute()
}
