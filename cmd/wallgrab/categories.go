package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wallgrab/pkg/category"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Print the category keyword table",
	Run: func(cmd *cobra.Command, args []string) {
		for _, entry := range category.DefaultTable() {
			fmt.Printf("%-15s %s\n", entry.Label, strings.Join(entry.Keywords, ", "))
		}
		fmt.Printf("%-15s (fallback when nothing matches)\n", category.Fallback)
	},
}
