package main

import "github.com/frahmantamala/interview-dashboard/cmd"

func main() {
	cmd.Execute()
}
