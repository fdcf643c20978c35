package pets

import "context"

// OwnerOf expone el ownerUserID de una mascota.
// Se usa para evitar ciclos de imports entre módulos (pets <-> appointments).
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}

// NameOf devuelve el nombre de la mascota, o "" si no existe.
func (s *Service) NameOf(ctx context.Context, petID string) string {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return ""
	}
	return p.Name
}
