package main

import "exusiai.dev/cardrank/cmd/app"

// @title          Card Usage Ranking API
// @description    Card usage rankings, weighted meta snapshots and originality scores.
// @BasePath       /api
func main() {
	app.Run()
}
