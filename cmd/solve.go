package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/UnknownOlympus/odyssey/internal/config"
	"github.com/UnknownOlympus/odyssey/internal/metrics"
	"github.com/UnknownOlympus/odyssey/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	stopsFile  string
	useGeocode bool
	startID    int
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Optimize a route from a stops file and print it as JSON",
	Long: `Read stops from a YAML or JSON file and print the optimal closed route.

The file is a list of stops:

  - id: 1
    address: Kyiv
    coordinates: {lat: 50.45, lng: 30.52}
  - id: 2
    address: Lviv

Stops without coordinates are geocoded only with --geocode.`,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVarP(&stopsFile, "file", "f", "stops.yaml", "Stops file path")
	solveCmd.Flags().BoolVar(&useGeocode, "geocode", false, "Geocode stops without coordinates")
	solveCmd.Flags().IntVar(&startID, "start", 0, "ID of the stop the route starts from")
}

type stopEntry struct {
	ID          int                 `yaml:"id"`
	Address     string              `yaml:"address"`
	Coordinates *models.Coordinates `yaml:"coordinates"`
}

type planOutput struct {
	ID            string       `json:"id"`
	AnchorID      int          `json:"anchorId"`
	Route         []stopOutput `json:"route"`
	TotalDistance string       `json:"totalDistance"`
}

type stopOutput struct {
	ID             int                 `json:"id"`
	Address        string              `json:"address"`
	Coordinates    *models.Coordinates `json:"coordinates,omitempty"`
	GeocodingError string              `json:"geocodingError,omitempty"`
}

// readStops parses a YAML document; JSON is accepted as a YAML subset.
func readStops(r io.Reader) ([]models.StopInput, error) {
	var entries []stopEntry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode stops: %w", err)
	}

	inputs := make([]models.StopInput, len(entries))
	for i, e := range entries {
		inputs[i] = models.StopInput{ID: e.ID, Address: e.Address, Coordinates: e.Coordinates}
	}

	return inputs, nil
}

func newPlanOutput(plan *models.RoutePlan) planOutput {
	out := planOutput{
		ID:            plan.ID,
		AnchorID:      plan.AnchorID,
		Route:         make([]stopOutput, 0, len(plan.Stops)),
		TotalDistance: fmt.Sprintf("%.2f", plan.TotalDistanceKm),
	}
	for _, stop := range plan.Stops {
		so := stopOutput{ID: stop.ID, Address: stop.Address, GeocodingError: stop.Reason()}
		if p, ok := stop.Coordinates(); ok {
			so.Coordinates = &p
		}
		out.Route = append(out.Route, so)
	}

	return out
}

func runSolve(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)

	file, err := os.Open(stopsFile)
	if err != nil {
		return fmt.Errorf("failed to open stops file: %w", err)
	}
	defer file.Close()

	inputs, err := readStops(file)
	if err != nil {
		return err
	}

	application, err := newApp(ctx, cfg, logger, metrics.NewMetrics(prometheus.NewRegistry()), useGeocode)
	if err != nil {
		return err
	}
	defer application.Close()

	var anchor *int
	if cmd.Flags().Changed("start") {
		anchor = &startID
	}

	plan, err := application.service.Optimize(ctx, inputs, anchor)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(newPlanOutput(plan))
}
