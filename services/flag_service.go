package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/germarr/fifaworldcup2026/repositories"
	"github.com/germarr/fifaworldcup2026/storage"
)

// fifaToFlagCDN maps FIFA trigrams to flagcdn.com country codes for the
// teams the mapping is not a simple lowercase of.
var fifaToFlagCDN = map[string]string{
	"ARG": "ar", "AUS": "au", "BEL": "be", "BRA": "br", "CAN": "ca",
	"CMR": "cm", "CRC": "cr", "CRO": "hr", "DEN": "dk", "ECU": "ec",
	"ENG": "gb-eng", "ESP": "es", "FRA": "fr", "GER": "de", "GHA": "gh",
	"IRN": "ir", "JPN": "jp", "KOR": "kr", "KSA": "sa", "MAR": "ma",
	"MEX": "mx", "NED": "nl", "POL": "pl", "POR": "pt", "QAT": "qa",
	"SEN": "sn", "SRB": "rs", "SUI": "ch", "TUN": "tn", "URU": "uy",
	"USA": "us", "WAL": "gb-wls",
}

const flagWidth = 80

// FlagService mirrors team flag images into our own bucket so pages never
// depend on the upstream CDN, and records each team's public flag URL.
type FlagService interface {
	// SyncAll mirrors a flag for every team with a known mapping and
	// returns how many flags were uploaded.
	SyncAll(ctx context.Context) (int, error)
}

type flagService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
	client   *http.Client
	logger   *slog.Logger
}

func NewFlagService(
	teamRepo repositories.TeamRepository,
	uploader storage.FileUploader,
	client *http.Client,
	logger *slog.Logger,
) FlagService {
	if client == nil {
		client = http.DefaultClient
	}
	return &flagService{
		teamRepo: teamRepo,
		uploader: uploader,
		client:   client,
		logger:   logger,
	}
}

func flagSourceURL(teamCode string) string {
	flagCode, ok := fifaToFlagCDN[teamCode]
	if !ok {
		return ""
	}
	return fmt.Sprintf("https://flagcdn.com/w%d/%s.png", flagWidth, flagCode)
}

func (s *flagService) SyncAll(ctx context.Context) (int, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, team := range teams {
		sourceURL := flagSourceURL(team.Code)
		if sourceURL == "" {
			s.logger.Warn("no flag mapping for team", slog.String("code", team.Code))
			continue
		}

		result, err := s.mirrorFlag(ctx, team.Code, sourceURL)
		if err != nil {
			return count, fmt.Errorf("failed to mirror flag for %s: %w", team.Code, err)
		}
		if err := s.teamRepo.UpdateFlag(ctx, team.ID, result.Key, result.Location); err != nil {
			return count, err
		}
		count++
	}
	s.logger.Info("team flags synced", slog.Int("uploaded", count))
	return count, nil
}

func (s *flagService) mirrorFlag(ctx context.Context, teamCode, sourceURL string) (*storage.UploadResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, sourceURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("flags/%s.png", teamCode)
	return s.uploader.Upload(ctx, key, "image/png", bytes.NewReader(body))
}
