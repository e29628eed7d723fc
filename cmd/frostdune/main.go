package main

import "github.com/MeKo-Tech/frostdune/internal/cmd"

func main() {
	cmd.Execute()
}
