package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"

	"github.com/df07/go-light-sampler/pkg/core"
	"github.com/df07/go-light-sampler/pkg/integrator"
	"github.com/df07/go-light-sampler/pkg/lightdist"
	"github.com/df07/go-light-sampler/pkg/scene"
	"github.com/df07/go-light-sampler/web/server"
)

func main() {
	sceneName := flag.String("scene", "twolight-box", "Built-in scene name")
	strategy := flag.String("strategy", "spatial", "Light sampling strategy: uniform, power, spatial, photonvoxel, photontree, mlcdftree, cdftree")
	photons := flag.Int("photons", 100000, "Photons traced by photon-based strategies")
	photonSampling := flag.String("photon-sampling", "uni", "Light selection while shooting photons: uni or power")
	maxVoxels := flag.Int("max-voxels", 64, "Voxel grid resolution along the widest scene axis")
	interpolation := flag.String("interpolation", "shepard", "Photon tree kernel: shepard, modshep, kreg, adkreg, none")
	intSmooth := flag.Float64("int-smooth", 1.0, "Kernel smoothing parameter")
	knn := flag.Bool("knn", true, "Use k-NN photon queries instead of radius queries")
	nearest := flag.Int("nearest", 50, "k for k-NN photon queries")
	radius := flag.Float64("radius", 0.1, "Radius for radius photon queries")
	samples := flag.Int("samples", 1024, "Direct lighting samples per demo point")
	serve := flag.Bool("serve", false, "Start the inspector server instead of the demo")
	port := flag.Int("port", 8080, "Inspector server port")
	flag.Parse()
	defer glog.Flush()

	if *serve {
		if err := server.NewServer(*port).Start(); err != nil {
			glog.Exitf("inspector server: %v", err)
		}
		return
	}

	if err := run(*sceneName, *strategy, *photons, *photonSampling, *maxVoxels,
		*interpolation, *intSmooth, *knn, *nearest, *radius, *samples); err != nil {
		glog.Errorf("%v", err)
		os.Exit(1)
	}
}

// run builds the scene and strategy, then estimates direct lighting at a few
// probe points spread through the scene interior
func run(sceneName, strategy string, photons int, photonSampling string, maxVoxels int,
	interpolation string, intSmooth float64, knn bool, nearest int, radius float64, samples int) error {
	sc, err := scene.Load(sceneName)
	if err != nil {
		return err
	}

	cfg := lightdist.DefaultConfig()
	cfg.Strategy = strategy
	cfg.PhotonCount = photons
	cfg.PhotonSampling = photonSampling
	cfg.MaxVoxels = maxVoxels
	cfg.Interpolation = interpolation
	cfg.IntSmooth = intSmooth
	cfg.KNN = knn
	cfg.NearestNeighbours = nearest
	cfg.PhotonRadius = radius

	distrib, err := lightdist.New(cfg, sc)
	if err != nil {
		return err
	}
	defer lightdist.LogStats(distrib)

	dl := integrator.NewDirectLighting(sc, distrib)
	bounds := sc.WorldBound()
	fmt.Printf("scene %s: %d lights, strategy %s\n", sceneName, len(sc.Lights()), distrib.Name())
	for _, t := range []core.Vec3{
		core.NewVec3(0.25, 0.1, 0.5),
		core.NewVec3(0.5, 0.1, 0.5),
		core.NewVec3(0.75, 0.1, 0.5),
	} {
		p := bounds.Lerp(t)
		radiance := dl.Average(p, core.NewVec3(0, 1, 0), samples)
		fmt.Printf("  direct light at %v: %v\n", p, radiance)
	}
	return nil
}
