package main

import "procurement-workflow-api/app"

func main() {
	app.Run()
}
