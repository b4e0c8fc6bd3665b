package identity

import (
	"go.uber.org/fx"

	"github.com/cargoflow/cargoflow/internal/config"
)

// Module provides the service identity signer via fx.
var Module = fx.Provide(newSigner)

type signerParams struct {
	fx.In

	Config *config.Config
}

func newSigner(p signerParams) *Signer {
	return NewSigner(p.Config.ServiceTokenSecret, p.Config.ServiceTokenTTL)
}
