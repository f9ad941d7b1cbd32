package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (log frame events, show FPS)")
	enemies := flag.Int("enemies", 0, "enemies in the first wave (0 uses arena.yaml)")
	seed := flag.Int64("seed", 1, "seed for enemy spawns and rope wind")
	tps := flag.Int("tps", 60, "simulation ticks per second")
	watch := flag.Bool("watch", false, "hot reload prefabs and scripts from prefabs/")
	lootGoal := flag.Int("loot-goal", 0, "loot needed to open the portal (0 uses arena.yaml)")
	flag.Parse()

	game, err := NewGame(Config{
		Debug:    *debug,
		Enemies:  *enemies,
		Seed:     *seed,
		TPS:      *tps,
		Watch:    *watch,
		LootGoal: *lootGoal,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetTPS(game.cfg.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(game.width*0.8), int(game.height*0.8))
	ebiten.SetWindowTitle("arpg")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
