package main

import "github.com/saadjs/kcal-trends/cmd/kcal"

func main() {
	kcal.Execute()
}
