package app

import (
	"time"

	"modpack-resolver/internal/adapters"
	"modpack-resolver/internal/ports"
)

type Service struct {
	Output ports.OutputWriterPort
	Clock  func() time.Time
}

func NewService() Service {
	return Service{
		Output: adapters.NewOutputFileAdapter(),
		Clock:  time.Now,
	}
}
