// Command warm primes the content caches and the translation memory ahead
// of traffic, and publishes the sitemap to the export storage.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Nixie-Tech-LLC/tarjumo/internal/app"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/config"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/hadith"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/quran"
	"github.com/Nixie-Tech-LLC/tarjumo/internal/sitemap"
)

type globals struct {
	ctx context.Context
	app *app.App
}

var CLI struct {
	Quran   QuranCmd   `cmd:"" help:"Fetch every surah and juz into the response cache"`
	Hadith  HadithCmd  `cmd:"" help:"Resolve a range of hadith translations into the translation memory"`
	Sitemap SitemapCmd `cmd:"" help:"Render sitemap.xml and upload it to export storage"`
}

type QuranCmd struct {
	Concurrency int `name:"concurrency" short:"j" default:"4" help:"Parallel upstream requests"`
}

func (q *QuranCmd) Validate() error {
	return validateConcurrency(q.Concurrency)
}

func (q *QuranCmd) Run(g *globals) error {
	eg, ctx := errgroup.WithContext(g.ctx)
	eg.SetLimit(q.Concurrency)

	for _, n := range quran.SurahParams() {
		eg.Go(func() error {
			if _, err := g.app.Quran.Surah(ctx, n); err != nil {
				return fmt.Errorf("surah %d: %w", n, err)
			}
			return nil
		})
	}
	for _, n := range quran.JuzParams() {
		eg.Go(func() error {
			if _, err := g.app.Quran.Juz(ctx, n); err != nil {
				return fmt.Errorf("juz %d: %w", n, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	log.Info().Int("surahs", quran.SurahCount).Int("juz", quran.JuzCount).Msg("[warm] quran cached")
	return nil
}

type HadithCmd struct {
	Collection  string `name:"collection" short:"c" required:"" help:"Collection slug, e.g. bukhari"`
	From        int    `name:"from" default:"1" help:"First hadith number"`
	To          int    `name:"to" required:"" help:"Last hadith number"`
	Concurrency int    `name:"concurrency" short:"j" default:"2" help:"Hadiths resolved in parallel"`
}

func (h *HadithCmd) Validate() error {
	if h.From < 1 || h.To < h.From {
		return fmt.Errorf("invalid range %d..%d", h.From, h.To)
	}
	return validateConcurrency(h.Concurrency)
}

func validateConcurrency(n int) error {
	if n < 1 {
		return fmt.Errorf("--concurrency must be at least 1, got %d", n)
	}
	return nil
}

func (h *HadithCmd) Run(g *globals) error {
	eg, ctx := errgroup.WithContext(g.ctx)
	eg.SetLimit(h.Concurrency)

	counts := make([]string, h.To-h.From+1)
	for n := h.From; n <= h.To; n++ {
		eg.Go(func() error {
			had, err := g.app.Hadith.Get(ctx, h.Collection, n)
			switch {
			case errors.Is(err, hadith.ErrNotFound):
				log.Warn().Str("collection", h.Collection).Int("number", n).Msg("[warm] hadith not found")
				return nil
			case err != nil:
				return fmt.Errorf("hadith %s/%d: %w", h.Collection, n, err)
			}
			counts[n-h.From] = had.Meta.Source
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	bySource := map[string]int{}
	for _, s := range counts {
		if s != "" {
			bySource[s]++
		}
	}
	log.Info().Str("collection", h.Collection).Interface("sources", bySource).Msg("[warm] hadith range resolved")
	return nil
}

type SitemapCmd struct{}

func (SitemapCmd) Run(g *globals) error {
	data, err := sitemap.Render(g.app.Config.BaseURL, time.Now())
	if err != nil {
		return err
	}
	url, err := g.app.Storage.Put(g.ctx, "sitemap.xml", data, sitemap.ContentType)
	if err != nil {
		return err
	}
	log.Info().Str("url", url).Msg("[warm] sitemap uploaded")
	return nil
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("warm"),
		kong.Description("Prime caches and translation memory for the Sindhi reader"),
		kong.UsageOnError(),
	)

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	app.SetupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, "tarjumo-warm")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize services")
	}
	defer a.Close()

	err = kctx.Run(&globals{ctx: ctx, app: a})
	kctx.FatalIfErrorf(err)
}
