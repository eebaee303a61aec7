package vehicle_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ackersim/internal/input"
	"github.com/san-kum/ackersim/internal/vehicle"
)

func newCar(cfg vehicle.Config) *vehicle.Car {
	car, err := vehicle.New(cfg)
	Expect(err).NotTo(HaveOccurred())
	return car
}

func baseConfig() vehicle.Config {
	return vehicle.Config{
		WheelbaseFront: 1.4,
		WheelbaseRear:  1.2,
		SampleInterval: 0.1,
		InitialSpeed:   100,
		MaxSpeed:       300,
	}
}

var _ = Describe("New", func() {
	It("accepts a valid configuration", func() {
		_, err := vehicle.New(baseConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects non-positive front wheelbase", func() {
		cfg := baseConfig()
		cfg.WheelbaseFront = 0
		_, err := vehicle.New(cfg)
		Expect(err).To(MatchError(ContainSubstring("front wheelbase")))
	})

	It("rejects non-positive rear wheelbase", func() {
		cfg := baseConfig()
		cfg.WheelbaseRear = -1
		_, err := vehicle.New(cfg)
		Expect(err).To(MatchError(ContainSubstring("rear wheelbase")))
	})

	It("rejects non-positive sample interval", func() {
		cfg := baseConfig()
		cfg.SampleInterval = 0
		_, err := vehicle.New(cfg)
		Expect(err).To(MatchError(ContainSubstring("sample interval")))
	})

	It("rejects an inverted speed range", func() {
		cfg := baseConfig()
		cfg.MinSpeed = 200
		cfg.MaxSpeed = 100
		_, err := vehicle.New(cfg)
		Expect(err).To(HaveOccurred())
	})

	It("rejects an initial speed outside the range", func() {
		cfg := baseConfig()
		cfg.InitialSpeed = 500
		_, err := vehicle.New(cfg)
		Expect(err).To(MatchError(ContainSubstring("initial speed")))
	})

	It("wraps the initial heading into [0, 2pi)", func() {
		cfg := baseConfig()
		cfg.InitialHeading = -math.Pi / 2
		car := newCar(cfg)
		Expect(car.Pose().Heading).To(BeNumerically("~", 3*math.Pi/2, 1e-12))
	})
})

var _ = Describe("Step", func() {
	It("matches the reference single-tick scenario", func() {
		car := newCar(baseConfig())
		car.Step(input.Command{Steer: 1.2, Direction: input.DirectionForward})

		pose := car.Pose()
		Expect(car.SlipAngle()).To(BeNumerically("~", 0.00967, 1e-4))
		Expect(pose.X).To(BeNumerically("~", 2.778, 1e-3))
		Expect(pose.Y).To(BeNumerically("~", 0.0269, 1e-3))
		Expect(pose.Heading).To(BeNumerically("~", 0.0224, 1e-3))
	})

	It("keeps the heading exactly constant when driving straight", func() {
		cfg := baseConfig()
		cfg.InitialHeading = 0.5
		car := newCar(cfg)

		for i := 0; i < 50; i++ {
			car.Step(input.Command{Direction: input.DirectionForward})
			Expect(car.Pose().Heading).To(Equal(0.5))
		}
	})

	It("always normalizes the heading into [0, 2pi)", func() {
		car := newCar(baseConfig())
		for i := 0; i < 2000; i++ {
			steer := 25.0
			if i%3 == 0 {
				steer = -25.0
			}
			car.Step(input.Command{Steer: steer, Direction: input.DirectionForward})
			psi := car.Pose().Heading
			Expect(psi).To(BeNumerically(">=", 0))
			Expect(psi).To(BeNumerically("<", 2*math.Pi))
		}
	})

	It("mirrors left and right turns about the initial heading axis", func() {
		left := newCar(baseConfig())
		right := newCar(baseConfig())

		for i := 0; i < 40; i++ {
			left.Step(input.Command{Steer: 1.2, Direction: input.DirectionForward})
			right.Step(input.Command{Steer: -1.2, Direction: input.DirectionForward})
		}

		lp, rp := left.Pose(), right.Pose()
		Expect(lp.X).To(BeNumerically("~", rp.X, 1e-9))
		Expect(lp.Y).To(BeNumerically("~", -rp.Y, 1e-9))
		Expect(lp.Heading).To(BeNumerically("~", 2*math.Pi-rp.Heading, 1e-9))
	})

	It("moves strictly opposite in reverse with zero steer", func() {
		fwd := newCar(baseConfig())
		rev := newCar(baseConfig())

		for i := 0; i < 20; i++ {
			fwd.Step(input.Command{Direction: input.DirectionForward})
			rev.Step(input.Command{Direction: input.DirectionBackward})
		}

		fp, rp := fwd.Pose(), rev.Pose()
		Expect(rp.X).To(BeNumerically("~", -fp.X, 1e-9))
		Expect(rp.Y).To(BeNumerically("~", -fp.Y, 1e-9))
		Expect(rp.Heading).To(Equal(fp.Heading))
	})

	It("does not move while no direction is commanded", func() {
		car := newCar(baseConfig())
		before := car.Pose()

		for i := 0; i < 30; i++ {
			car.Step(input.Command{Direction: input.DirectionNone})
		}

		Expect(car.Pose()).To(Equal(before))
		Expect(car.Speed).To(Equal(100.0), "set-point survives standing still")
	})

	It("clamps the speed set-point at both ends", func() {
		car := newCar(baseConfig())

		for i := 0; i < 50; i++ {
			car.Step(input.Command{Direction: input.DirectionForward, SpeedDelta: 10})
		}
		Expect(car.Speed).To(Equal(300.0))

		for i := 0; i < 100; i++ {
			car.Step(input.Command{Direction: input.DirectionForward, SpeedDelta: -10})
		}
		Expect(car.Speed).To(Equal(0.0))
	})

	It("resets the steer angle when no turn is commanded", func() {
		car := newCar(baseConfig())
		car.Step(input.Command{Steer: 1.2, Direction: input.DirectionForward})
		Expect(car.SteerAngle).To(Equal(1.2))

		car.Step(input.Command{Direction: input.DirectionForward})
		Expect(car.SteerAngle).To(BeZero())
	})
})

var _ = Describe("Reset", func() {
	It("restores the initial pose, speed, and geometry", func() {
		car := newCar(baseConfig())
		for i := 0; i < 10; i++ {
			car.Step(input.Command{Steer: 5, Direction: input.DirectionForward, SpeedDelta: 10})
		}
		Expect(car.SetParam("wheelbase_front", 2.0)).To(Succeed())

		car.Reset()

		Expect(car.Pose()).To(Equal(vehicle.Pose{}))
		Expect(car.Speed).To(Equal(100.0))
		lf, lb := car.Wheelbase()
		Expect(lf).To(Equal(1.4))
		Expect(lb).To(Equal(1.2))
	})
})

var _ = Describe("SetParam", func() {
	It("rejects non-positive geometry", func() {
		car := newCar(baseConfig())
		Expect(car.SetParam("wheelbase_front", 0)).NotTo(Succeed())
		Expect(car.SetParam("wheelbase_rear", -1)).NotTo(Succeed())
	})

	It("re-clamps the set-point when max_speed drops", func() {
		car := newCar(baseConfig())
		Expect(car.SetParam("max_speed", 80)).To(Succeed())
		Expect(car.Speed).To(Equal(80.0))
	})

	It("rejects unknown parameters", func() {
		car := newCar(baseConfig())
		Expect(car.SetParam("mass", 1)).NotTo(Succeed())
	})
})
