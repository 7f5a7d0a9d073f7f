package main

import (
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/cours-de-latin/constructio/storage/filesystem"
	"github.com/cours-de-latin/constructio/storage/sqlite/zombiezen"
)

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "import a JSON corpus (and optionally its tags) into a sqlite database",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "corpus JSON file", Required: true},
			&cli.StringFlag{Name: "to", Usage: "sqlite database path", Required: true},
			&cli.StringFlag{Name: "tags", Usage: "constructions JSON file to import alongside"},
		},
		Action: func(c *cli.Context) error {
			return importAction(c.String("from"), c.String("to"), c.String("tags"))
		},
	}
}

func importAction(from, to, tagsPath string) error {
	src, err := filesystem.NewCorpusStore(from)
	if err != nil {
		return err
	}

	pool, err := zombiezen.NewPool(to)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := zombiezen.CreateSchemas(pool, "corpus.sql"); err != nil {
		return fmt.Errorf("failed to create corpus tables: %w", err)
	}
	dst := zombiezen.NewCorpusStore(pool)

	chapters, err := src.Chapters()
	if err != nil {
		return err
	}

	fmt.Printf("Reading corpus from %s...\n", from)
	uiprogress.Start()
	bar := uiprogress.AddBar(len(chapters))
	bar.AppendCompleted()
	bar.PrependElapsed()

	count := 0
	for _, ch := range chapters {
		sentences, err := src.Sentences(ch)
		if err != nil {
			uiprogress.Stop()
			return fmt.Errorf("failed to read chapter %s: %w", ch, err)
		}
		if err := dst.WriteChapter(ch, sentences); err != nil {
			uiprogress.Stop()
			return fmt.Errorf("failed to write chapter %s: %w", ch, err)
		}
		count += len(sentences)
		bar.Incr()
	}
	uiprogress.Stop()
	fmt.Printf("Imported %d chapters, %d sentences into %s\n", len(chapters), count, to)

	if tagsPath == "" {
		return nil
	}

	tagSrc := filesystem.NewTagStore(tagsPath)
	meta, err := tagSrc.Meta()
	if err != nil {
		return err
	}
	bySid, err := tagSrc.All()
	if err != nil {
		return err
	}
	if err := zombiezen.CreateSchemas(pool, "tags.sql"); err != nil {
		return fmt.Errorf("failed to create tag tables: %w", err)
	}
	if err := zombiezen.NewTagStore(pool).Write(meta, bySid); err != nil {
		return fmt.Errorf("failed to write tags: %w", err)
	}
	fmt.Printf("Imported tags for %d sentences\n", len(bySid))
	return nil
}
