// Command adsilsim steps a recorded (or replayed) frame sequence through
// a configured vehicle scene, solves each frame's ADSIL detection cloud,
// and optionally persists, charts, and streams the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/banshee-data/velocity.report/internal/fsutil"
	"github.com/banshee-data/velocity.report/internal/sim/config"
	"github.com/banshee-data/velocity.report/internal/sim/exportviz"
	"github.com/banshee-data/velocity.report/internal/sim/frameio"
	"github.com/banshee-data/velocity.report/internal/sim/frameplayer"
	"github.com/banshee-data/velocity.report/internal/sim/scene"
	"github.com/banshee-data/velocity.report/internal/sim/solver"
	"github.com/banshee-data/velocity.report/internal/sim/store"
	"github.com/banshee-data/velocity.report/internal/sim/telemetry"
	"github.com/banshee-data/velocity.report/internal/timeutil"
	"github.com/banshee-data/velocity.report/internal/version"
)

var (
	sceneFile       = flag.String("scene", "", "Path to a scene configuration JSON file")
	framesDir       = flag.String("frames", "", "Directory of recorded frame_XXXXX.json files")
	windowSize      = flag.Int("window", 2, "Half-width of the frame player's sliding window")
	playbackRate    = flag.Float64("rate", 10, "Playback rate in frames per second")
	meshQuality     = flag.Int("mesh-quality", 64, "Sampling quality for shape surface meshes (sets the sampling grid resolution, not the point count)")
	dbPath          = flag.String("db", "", "SQLite path for persisting detections and trajectory (disabled if empty)")
	csvOutDir       = flag.String("csv-out", "", "Directory to write detections.csv/trajectory.csv into (disabled if empty)")
	plotOutDir      = flag.String("plot-out", "", "Directory to write trajectory.png/dashboard.html into (disabled if empty)")
	enableTelemetry = flag.Bool("telemetry", false, "Publish each frame's point cloud to the telemetry publisher (its gRPC server has no service registered)")
	telemetryListen = flag.String("telemetry-listen", telemetry.DefaultConfig().ListenAddr, "gRPC listen address for telemetry streaming")
	maxCollocation  = flag.Float64("max-collocation-tolerance", 0, "Reject solves where receiver 0 is farther than this many meters from a transmitter (0 disables the check)")
	debugAddr       = flag.String("debug-addr", "", "Serve a live SQL debugging UI over the detections store on this address (requires -db, disabled if empty)")
	versionFlag     = flag.Bool("version", false, "Print version information and exit")
)

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if *versionFlag {
		fmt.Printf("adsilsim %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if *sceneFile == "" || *framesDir == "" {
		log.Fatal("both -scene and -frames are required")
	}

	if err := run(); err != nil {
		log.Fatalf("adsilsim: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := config.LoadScene(*sceneFile)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}

	source, err := frameio.NewDirSource(fsutil.OSFileSystem{}, *framesDir)
	if err != nil {
		return fmt.Errorf("open frame source: %w", err)
	}
	log.Printf("loaded %d frames from %s", source.Count(), *framesDir)

	player := frameplayer.New(source, *windowSize, *playbackRate)

	sv := solver.New(solver.Config{MaxCollocationTolerance: float32(*maxCollocation)})

	var sink *store.Store
	if *dbPath != "" {
		sink, err = store.Open(*dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer sink.Close()
		log.Printf("persisting detections and trajectory to %s", *dbPath)

		if *debugAddr != "" {
			mux := http.NewServeMux()
			if err := sink.AttachAdminRoutes(mux); err != nil {
				return fmt.Errorf("attach admin routes: %w", err)
			}
			debugServer := &http.Server{Addr: *debugAddr, Handler: mux}
			go func() {
				if err := debugServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Printf("debug server error: %v", err)
				}
			}()
			defer debugServer.Close()
			log.Printf("serving store debug UI on %s", *debugAddr)
		}
	}

	var pub *telemetry.Publisher
	if *enableTelemetry {
		pub = telemetry.NewPublisher(telemetry.Config{ListenAddr: *telemetryListen, MaxClients: 5})
		if err := pub.Start(); err != nil {
			return fmt.Errorf("start telemetry publisher: %w", err)
		}
		defer pub.Stop()
		handle := player.AddObserver(pub)
		defer handle.Drop()
		log.Printf("streaming telemetry on %s", *telemetryListen)
	}

	solve := &solveObserver{scene: s, solver: sv, meshQuality: *meshQuality, sink: sink}
	handle := player.AddObserver(solve)
	defer handle.Drop()

	// The player only notifies observers on StepForward/Seek, so the
	// initial frame at construction is solved explicitly here; every
	// subsequent frame is driven through the observer below.
	solve.OnFrameChanged(player.CurrentFrame())

	player.Play()
	driver := frameplayer.NewRealtimeDriver(player, timeutil.RealClock{}, time.Second/time.Duration(maxInt(1, int(*playbackRate))))

	driverDone := make(chan error, 1)
	go func() { driverDone <- driver.Run(ctx) }()

	select {
	case <-ctx.Done():
		log.Printf("interrupted after frame %d", player.CurrentIndex())
		driver.Stop()
	case err := <-driverDone:
		if err != nil {
			return fmt.Errorf("playback: %w", err)
		}
	}

	if err := solve.err(); err != nil {
		return err
	}

	return writeReports(sink)
}

// solveObserver runs the solver against every frame the player advances
// to, optionally persisting the resulting detection cloud and vehicle
// trajectory point to sink. It implements frameplayer.Observer.
type solveObserver struct {
	scene       *scene.Scene
	solver      *solver.Solver
	meshQuality int
	sink        *store.Store

	mu       sync.Mutex
	firstErr error
}

func (o *solveObserver) OnFrameChanged(frame *frameio.Frame) {
	if frame == nil {
		return
	}

	o.scene.SetExternalCloud(frame.Cloud)
	o.scene.Vehicle().RecordPosition()

	merged := o.scene.MergedCloud(o.meshQuality)
	detections, _, err := o.solver.Solve(o.scene.Vehicle(), merged)
	if err != nil {
		o.setErr(fmt.Errorf("solve frame at t=%v: %w", frame.Timestamp, err))
		return
	}

	if o.sink == nil {
		return
	}
	if err := o.sink.RecordDetections(frame.Timestamp, detections); err != nil {
		log.Printf("record detections: %v", err)
	}
	if err := o.sink.RecordTrajectoryPoint(o.scene.Vehicle().Root().GlobalTransform().Position); err != nil {
		log.Printf("record trajectory point: %v", err)
	}
}

func (o *solveObserver) setErr(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.firstErr == nil {
		o.firstErr = err
	}
}

func (o *solveObserver) err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.firstErr
}

func writeReports(sink *store.Store) error {
	if sink == nil {
		return nil
	}

	trajectory, err := sink.Trajectory()
	if err != nil {
		return fmt.Errorf("load trajectory for reports: %w", err)
	}
	detections, err := sink.DetectionsSince(0)
	if err != nil {
		return fmt.Errorf("load detections for reports: %w", err)
	}

	if *csvOutDir != "" {
		if err := os.MkdirAll(*csvOutDir, 0o755); err != nil {
			return fmt.Errorf("create csv output dir: %w", err)
		}
		if err := exportviz.WriteDetectionsCSV(filepath.Join(*csvOutDir, "detections.csv"), detections); err != nil {
			return fmt.Errorf("write detections csv: %w", err)
		}
		if err := exportviz.WriteTrajectoryCSV(filepath.Join(*csvOutDir, "trajectory.csv"), trajectory); err != nil {
			return fmt.Errorf("write trajectory csv: %w", err)
		}
	}

	if *plotOutDir != "" {
		if err := os.MkdirAll(*plotOutDir, 0o755); err != nil {
			return fmt.Errorf("create plot output dir: %w", err)
		}
		if len(trajectory) > 0 {
			if err := exportviz.PlotTrajectoryXY(filepath.Join(*plotOutDir, "trajectory.png"), trajectory); err != nil {
				return fmt.Errorf("plot trajectory: %w", err)
			}
		}
		if err := exportviz.WriteDashboard(filepath.Join(*plotOutDir, "dashboard.html"), detections, trajectory); err != nil {
			return fmt.Errorf("write dashboard: %w", err)
		}
	}

	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
