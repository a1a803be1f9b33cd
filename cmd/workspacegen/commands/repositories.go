package commands

import (
	"fmt"
	"net/url"
	"text/tabwriter"

	"git.home.luguber.info/inful/workspacegen/internal/render"
)

// RepositoriesCmd implements the 'repositories' command.
type RepositoriesCmd struct {
	ShowCredentials bool `name:"show-credentials" help:"Print repository passwords instead of redacting them"`
}

func (c *RepositoriesCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(g.stdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tURL\tLAYOUT")
	for _, repo := range newResolver(cfg).Repositories() {
		entry := render.RepositoryXMLEntry(repo)
		shown := entry.URL
		if !c.ShowCredentials {
			if u, err := url.Parse(entry.URL); err == nil {
				shown = u.Redacted()
			}
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", entry.ID, entry.Name, shown, entry.Layout)
	}
	return tw.Flush()
}
