package main

import "github.com/redactyl/zerowidth/cmd/zerowidth"

func main() { zerowidth.Execute() }
