/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/members-club/webserver/cmd"

func main() {
	cmd.Execute()
}
