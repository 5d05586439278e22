package main

import (
	"flag"

	"github.com/RoanBrand/NMRStats/log"
	"github.com/RoanBrand/NMRStats/service"
	ks "github.com/kardianos/service"
)

func main() {
	svcFlag := flag.String("service", "", "Control the system service.")
	flag.Parse()

	svcConfig := &ks.Config{
		Name:        "NMRStats",
		DisplayName: "NMR Spectrometer Statistics",
		Description: "Provides API for yearly NMR spectrometer usage from acqus files",
	}

	s, err := ks.New(service.NewApp(), svcConfig)
	if err != nil {
		log.Fatal(err)
	}

	if *svcFlag != "" {
		err = ks.Control(s, *svcFlag)
		if err != nil {
			log.Printf("Valid actions: %q\n", ks.ControlAction)
			log.Fatal(err)
		}
		return
	}

	logger, err := s.Logger(nil)
	if err != nil {
		log.Fatal(err)
	}
	err = s.Run()
	if err != nil {
		logger.Error(err)
	}
}
