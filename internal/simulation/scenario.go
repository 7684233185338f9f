package simulation

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/danghamo/zoo/internal/app/handler"
	"github.com/danghamo/zoo/internal/app/service"
	zooevents "github.com/danghamo/zoo/internal/cqrs"
	"github.com/danghamo/zoo/internal/domain/animal"
	"github.com/danghamo/zoo/internal/domain/enclosure"
	"github.com/danghamo/zoo/internal/domain/staff"
	"github.com/danghamo/zoo/internal/domain/zoo"
	"github.com/danghamo/zoo/pkg/config"
	"github.com/danghamo/zoo/pkg/logger"
)

// Config parameterises the scripted zoo day
type Config struct {
	ZooName  string
	Location string
	Capacity int
	Policy   enclosure.CapacityPolicy
}

// DefaultConfig is the Giza zoo with seven enclosures of fifty places each
func DefaultConfig() Config {
	return Config{
		ZooName:  "Hadiqat El-Hayawan",
		Location: "Gize, Egypt",
		Capacity: 50,
		Policy:   enclosure.Advisory,
	}
}

// ConfigFrom builds a scenario config from application configuration
func ConfigFrom(cfg *config.Config) (Config, error) {
	policy, err := enclosure.ParseCapacityPolicy(cfg.Enclosure.CapacityPolicy)
	if err != nil {
		return Config{}, err
	}
	return Config{
		ZooName:  cfg.Zoo.Name,
		Location: cfg.Zoo.Location,
		Capacity: cfg.Enclosure.DefaultCapacity,
		Policy:   policy,
	}, nil
}

// Enclosure names in opening order
const (
	Mammals    = "mammals"
	Lions      = "lions"
	Giraffes   = "giraffes"
	FlyingFish = "flying_fish"
	Penguins   = "penguins"
	Pigeons    = "pigeons"
	Snakes     = "snakes"
)

var enclosureOrder = []string{Mammals, Lions, Giraffes, FlyingFish, Penguins, Pigeons, Snakes}

// Result exposes what the scenario built
type Result struct {
	Service      *service.ZooService
	Enclosures   map[string]*enclosure.Enclosure
	Lions        []*animal.Lion
	Veterinarian *staff.Veterinarian
	Zookeeper    *staff.Zookeeper
	Treatments   []staff.Treatment
	Meals        []animal.Meal
	Report       string
}

// Run plays the scripted day: stock the enclosures, hire staff, treat and
// feed every lion, move lion1 into the mammal enclosure and print the report.
// Progress is written to out the way a keeper would read it.
func Run(ctx context.Context, cfg Config, publisher zooevents.EventPublisher, log *logger.Logger, out io.Writer, opts ...handler.Option) (*Result, error) {
	if log == nil {
		log = logger.NewNop()
	}
	opts = append([]handler.Option{handler.WithDefaultCapacityPolicy(cfg.Policy)}, opts...)

	svc := service.NewZooService(zoo.New(cfg.ZooName, cfg.Location), publisher, log, opts...)
	res := &Result{Service: svc, Enclosures: make(map[string]*enclosure.Enclosure, len(enclosureOrder))}

	for _, name := range enclosureOrder {
		e, err := svc.OpenEnclosure(ctx, cfg.Capacity, "")
		if err != nil {
			return nil, fmt.Errorf("failed to open %s enclosure: %w", name, err)
		}
		res.Enclosures[name] = e
	}

	res.Lions = lions()
	stock := map[string][]animal.Animal{
		Lions:      asAnimals(res.Lions),
		Giraffes:   giraffes(),
		FlyingFish: flyingFish(),
		Penguins:   penguins(),
		Pigeons:    pigeons(),
		Snakes:     snakes(),
	}
	for _, name := range enclosureOrder {
		for _, a := range stock[name] {
			if err := svc.Admit(ctx, res.Enclosures[name].ID(), a); err != nil {
				return nil, fmt.Errorf("failed to admit %s: %w", a.Name(), err)
			}
		}
	}

	var err error
	if res.Veterinarian, err = svc.HireVeterinarian(ctx, "Omar Zaid", true); err != nil {
		return nil, err
	}
	if res.Zookeeper, err = svc.HireZookeeper(ctx, "Mostafa Raef", "Morning"); err != nil {
		return nil, err
	}

	lionPen := res.Enclosures[Lions]
	printHealth(out, lionPen)
	for a := range lionPen.All() {
		t, err := svc.Treat(ctx, res.Veterinarian.ID(), a)
		if err != nil {
			return nil, fmt.Errorf("failed to treat %s: %w", a.Name(), err)
		}
		res.Treatments = append(res.Treatments, t)
	}
	printHealth(out, lionPen)

	for a := range lionPen.All() {
		meal, err := svc.Feed(ctx, res.Zookeeper.ID(), a)
		if err != nil {
			return nil, fmt.Errorf("failed to feed %s: %w", a.Name(), err)
		}
		res.Meals = append(res.Meals, meal)
	}

	mammals := res.Enclosures[Mammals]
	printListings(out, lionPen, mammals)
	if err := svc.Move(ctx, res.Zookeeper.ID(), res.Lions[0], mammals.ID()); err != nil {
		return nil, fmt.Errorf("failed to move %s: %w", res.Lions[0].Name(), err)
	}
	printListings(out, lionPen, mammals)

	if res.Report, err = svc.Report(ctx); err != nil {
		return nil, err
	}
	fmt.Fprint(out, res.Report)

	log.Info("Simulation finished",
		zap.Int("enclosures", len(res.Enclosures)),
		zap.Int("treatments", len(res.Treatments)),
		zap.Int("meals", len(res.Meals)))

	return res, nil
}

func printHealth(out io.Writer, e *enclosure.Enclosure) {
	for a := range e.All() {
		fmt.Fprintf(out, "%s %d\n", a.Name(), a.Health())
	}
}

func printListings(out io.Writer, pens ...*enclosure.Enclosure) {
	for _, e := range pens {
		fmt.Fprintf(out, "%s Animals:\n%s\n", e.ID(), e.Describe())
	}
}

func asAnimals[T animal.Animal](in []T) []animal.Animal {
	out := make([]animal.Animal, 0, len(in))
	for _, a := range in {
		out = append(out, a)
	}
	return out
}

func lions() []*animal.Lion {
	return []*animal.Lion{
		animal.NewLion("lion1", animal.Years(12), 90, true, 12),
		animal.NewLion("lion2", animal.Years(20), 40, true, 14),
		animal.NewLion("lion3", animal.Years(40), 50, true, 10),
		animal.NewLion("lion4", animal.Years(30), 60, true, 15),
		animal.NewLion("lion5", animal.Years(25), 70, true, 16),
	}
}

func giraffes() []animal.Animal {
	return asAnimals([]*animal.Giraffe{
		animal.NewGiraffe("giraffe1", animal.Years(12), 100, true, 100),
		animal.NewGiraffe("giraffe2", animal.Years(14), 80, true, 90),
		animal.NewGiraffe("giraffe3", animal.Years(20), 56, true, 120),
		animal.NewGiraffe("giraffe4", animal.Years(30), 70, true, 110),
		animal.NewGiraffe("giraffe5", animal.Years(10), 92, true, 90),
	})
}

func flyingFish() []animal.Animal {
	return asAnimals([]*animal.FlyingFish{
		animal.NewFlyingFish("FlyingFish1", animal.Years(12), 100, animal.SaltWater, true, 10),
		animal.NewFlyingFish("FlyingFish2", animal.Years(14), 80, animal.SaltWater, true, 12),
		animal.NewFlyingFish("FlyingFish3", animal.Years(20), 56, animal.SaltWater, true, 14),
		animal.NewFlyingFish("FlyingFish4", animal.Years(30), 70, animal.SaltWater, true, 9),
		animal.NewFlyingFish("FlyingFish5", animal.Years(10), 92, animal.SaltWater, true, 11),
	})
}

func penguins() []animal.Animal {
	return asAnimals([]*animal.Penguin{
		animal.NewPenguin("penguin1", animal.Years(6), 100, false, 10),
		animal.NewPenguin("penguin2", animal.Years(8), 80, false, 12),
		animal.NewPenguin("penguin3", animal.Years(10), 56, false, 14),
		animal.NewPenguin("penguin4", animal.Years(12), 70, false, 9),
		animal.NewPenguin("penguin5", animal.Years(14), 92, false, 11),
	})
}

func pigeons() []animal.Animal {
	return asAnimals([]*animal.Pigeon{
		animal.NewPigeon("pigeon1", animal.Years(2), 96, true, 10),
		animal.NewPigeon("pigeon2", animal.Years(4), 80, true, 6),
		animal.NewPigeon("pigeon3", animal.Years(6), 56, true, 9),
		animal.NewPigeon("pigeon4", animal.Years(8), 70, true, 8),
		animal.NewPigeon("pigeon5", animal.Years(10), 92, true, 5),
	})
}

func snakes() []animal.Animal {
	return asAnimals([]*animal.Snake{
		animal.NewSnake("snake1", animal.Years(14), 56, animal.DarkSkin, true),
		animal.NewSnake("snake2", animal.Years(16), 70, animal.LightSkin, false),
		animal.NewSnake("snake3", animal.Years(18), 92, animal.DarkSkin, true),
		animal.NewSnake("snake4", animal.Years(20), 80, animal.LightSkin, false),
		animal.NewSnake("snake5", animal.Years(22), 56, animal.DarkSkin, false),
	})
}
