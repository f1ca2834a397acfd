package main

import "github.com/Madhav-Gupta-28/perfumery-backend-go/cmd"

func main() {
	cmd.Execute()
}
