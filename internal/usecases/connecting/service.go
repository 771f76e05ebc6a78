package connecting

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/marketing-analytics-api/internal/domain"
	"github.com/vfg2006/marketing-analytics-api/pkg/utils"
)

const referenceLength = 10

// Nomes exibidos nas mensagens de cada plataforma
var platformNames = map[domain.AdPlatform]string{
	domain.AdPlatformGoogleAds: "Google Ads",
	domain.AdPlatformMetaAds:   "Meta Ads",
}

type Connector interface {
	Connect(ctx context.Context, platform domain.AdPlatform, req domain.ConnectionRequest) (*domain.ConnectionResponse, error)
}

// Service valida os formulários de conexão. Nenhuma plataforma é contactada:
// a resposta apenas confirma que os campos foram preenchidos.
type Service struct{}

func NewService() Connector {
	return &Service{}
}

func (s *Service) Connect(ctx context.Context, platform domain.AdPlatform, req domain.ConnectionRequest) (*domain.ConnectionResponse, error) {
	name, ok := platformNames[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlatform, platform)
	}

	if strings.TrimSpace(req.ClientID) == "" || strings.TrimSpace(req.AccessToken) == "" {
		return nil, ErrMissingCredentials
	}

	reference, err := utils.GenerateID(referenceLength)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerateReference, err)
	}

	logrus.WithFields(logrus.Fields{
		"platform":  platform,
		"reference": reference,
	}).Info("Conexão simulada registrada")

	return &domain.ConnectionResponse{
		Platform:  platform,
		Reference: reference,
		Connected: true,
		Message:   fmt.Sprintf("Conexão estabelecida com %s!", name),
	}, nil
}
