package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/s2"
	"github.com/spf13/cobra"
	"github.com/tzneal/geoconvert"
)

var precision int

var rootCmd = &cobra.Command{
	Use:   "geoconvert",
	Short: "Convert between geodetic, UTM/UPS and MGRS coordinates",
	Long:  `Convert WGS84 coordinates between latitude/longitude, UTM/UPS and MGRS representations.`,
}

var toMgrsCmd = &cobra.Command{
	Use:   "to-mgrs <lat> <lon>",
	Short: "Convert latitude/longitude to an MGRS string",
	Args:  cobra.ExactArgs(2),
	RunE:  runToMgrs,
}

var fromMgrsCmd = &cobra.Command{
	Use:   "from-mgrs <mgrs>",
	Short: "Convert an MGRS string to latitude/longitude",
	Args:  cobra.ExactArgs(1),
	RunE:  runFromMgrs,
}

var toUtmCmd = &cobra.Command{
	Use:   "to-utm <lat> <lon>",
	Short: "Convert latitude/longitude to UTM/UPS",
	Args:  cobra.ExactArgs(2),
	RunE:  runToUtm,
}

var fromUtmCmd = &cobra.Command{
	Use:   "from-utm <zone> <n|s> <easting> <northing>",
	Short: "Convert UTM/UPS to latitude/longitude (zone 0 means UPS)",
	Args:  cobra.ExactArgs(4),
	RunE:  runFromUtm,
}

var distanceCmd = &cobra.Command{
	Use:   "distance <lat1> <lon1> <lat2> <lon2>",
	Short: "Great-circle distance in meters between two points",
	Args:  cobra.ExactArgs(4),
	RunE:  runDistance,
}

func init() {
	toMgrsCmd.Flags().IntVarP(&precision, "precision", "p", 5, "Digits per axis, -1 to 11")

	rootCmd.AddCommand(toMgrsCmd)
	rootCmd.AddCommand(fromMgrsCmd)
	rootCmd.AddCommand(toUtmCmd)
	rootCmd.AddCommand(fromUtmCmd)
	rootCmd.AddCommand(distanceCmd)
}

func parseLatLng(latArg, lonArg string) (s2.LatLng, error) {
	lat, err := strconv.ParseFloat(latArg, 64)
	if err != nil {
		return s2.LatLng{}, fmt.Errorf("bad latitude %q: %w", latArg, err)
	}
	lon, err := strconv.ParseFloat(lonArg, 64)
	if err != nil {
		return s2.LatLng{}, fmt.Errorf("bad longitude %q: %w", lonArg, err)
	}
	return s2.LatLngFromDegrees(lat, lon), nil
}

func runToMgrs(cmd *cobra.Command, args []string) error {
	ll, err := parseLatLng(args[0], args[1])
	if err != nil {
		return err
	}
	m, err := geoconvert.MgrsFromLatLng(ll, precision)
	if err != nil {
		return err
	}
	fmt.Println(m)
	return nil
}

func runFromMgrs(cmd *cobra.Command, args []string) error {
	m, err := geoconvert.ParseMgrs(args[0])
	if err != nil {
		return err
	}
	ll := m.LatLng()
	fmt.Printf("%.8f %.8f\n", ll.Lat.Degrees(), ll.Lng.Degrees())
	return nil
}

func runToUtm(cmd *cobra.Command, args []string) error {
	ll, err := parseLatLng(args[0], args[1])
	if err != nil {
		return err
	}
	u, err := geoconvert.ToUtmUps(ll)
	if err != nil {
		return err
	}
	fmt.Println(u)
	return nil
}

func runFromUtm(cmd *cobra.Command, args []string) error {
	zone, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("bad zone %q: %w", args[0], err)
	}
	var northp bool
	switch strings.ToLower(args[1]) {
	case "n", "north":
		northp = true
	case "s", "south":
		northp = false
	default:
		return fmt.Errorf("bad hemisphere %q: want n or s", args[1])
	}
	easting, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("bad easting %q: %w", args[2], err)
	}
	northing, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return fmt.Errorf("bad northing %q: %w", args[3], err)
	}
	u, err := geoconvert.NewUtmUps(zone, northp, easting, northing)
	if err != nil {
		return err
	}
	ll := u.LatLng()
	fmt.Printf("%.8f %.8f\n", ll.Lat.Degrees(), ll.Lng.Degrees())
	return nil
}

func runDistance(cmd *cobra.Command, args []string) error {
	a, err := parseLatLng(args[0], args[1])
	if err != nil {
		return err
	}
	b, err := parseLatLng(args[2], args[3])
	if err != nil {
		return err
	}
	fmt.Printf("%.3f\n", geoconvert.Haversine(a, b))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
