package server

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/thriveremote/thrive-server/internal/config"
)

// initialiseSystem makes sure the anonymous fallback user exists before the
// first request arrives, so tokenless traffic never hits a creation race at
// startup.
func (s *Server) initialiseSystem(ctx context.Context, config config.Config) error {
	anonymousID := config.GetAnonymousUserID()
	_, created, err := s.engine.ResolveOrCreateUser(ctx, anonymousID)
	if err != nil {
		return fmt.Errorf("[Server initialiseSystem] failed to ensure anonymous user %q: %w", anonymousID, err)
	}
	if created {
		log.Info().Str("user_id", anonymousID).Msg("Created anonymous fallback user")
	}
	return nil
}
