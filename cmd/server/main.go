package main

import "github.com/goodnessaig1/gidolee-video-share/internal/cli"

func main() {
	cli.Execute()
}
