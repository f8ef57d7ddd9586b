package main

import "github.com/frahmantamala/kpi-portal/cmd"

func main() {
	cmd.Execute()
}
