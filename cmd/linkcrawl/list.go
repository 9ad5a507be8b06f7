package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/linkcrawl"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := linkcrawl.LinkFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Address != "" {
		filter.Address = &c.Address
	}

	links, err := deps.Links.FindLinks(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linkcrawl.ErrorMessage(err))
		return err
	}

	if len(links) == 0 {
		fmt.Fprintln(deps.Stdout, "No links found. Use 'linkcrawl crawl --url URL' to collect some.")
		return nil
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		for _, l := range links {
			if err := enc.Encode(l); err != nil {
				return err
			}
		}
		return nil
	}

	for _, l := range links {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", l.SavedAt.Format(time.RFC3339), l.Address)
	}
	return nil
}
