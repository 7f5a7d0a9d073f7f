package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/cours-de-latin/constructio/review"
	sent "github.com/cours-de-latin/constructio/sentence"
)

func reviewCommand() *cli.Command {
	return &cli.Command{
		Name:  "review",
		Usage: "census and validation report over a tagged corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "corpus", Usage: "corpus path (.json or sqlite db)", Required: true},
			&cli.StringFlag{Name: "tags", Usage: "tags path (.json or sqlite db)", Required: true},
			&cli.BoolFlag{Name: "examples", Usage: "print capped examples per type"},
			&cli.BoolFlag{Name: "tokens", Usage: "include token detail lines in examples"},
		},
		Action: func(c *cli.Context) error {
			return reviewAction(c.String("corpus"), c.String("tags"), c.Bool("examples"), c.Bool("tokens"))
		},
	}
}

func reviewAction(corpusPath, tagsPath string, withExamples, withTokens bool) error {
	pool := &Pool{}
	defer pool.Close()

	corpus, err := NewCorpusRepository(pool, corpusPath)
	if err != nil {
		return err
	}
	store, err := NewTagRepository(pool, tagsPath)
	if err != nil {
		return err
	}

	bySid, err := store.All()
	if err != nil {
		return err
	}

	lookup := func(sid string) (sent.Sentence, error) {
		return corpus.Sentence(sid)
	}

	census := review.NewCensus()
	census.AggregateAll(bySid, lookup)
	census.Summary(os.Stdout)

	if withExamples {
		review.Examples(os.Stdout, bySid, lookup, withTokens)
	}
	return nil
}
