package services

import (
	"context"
	"sort"
	"time"

	"github.com/sump-exe/Sports-Game-Management/models"
	"github.com/sump-exe/Sports-Game-Management/repositories"
)

// fakeStore backs in-memory implementations of every repository
// interface, shared by the service tests.
type fakeStore struct {
	teams   map[int]*models.Team
	players map[int]*models.Player
	venues  map[int]*models.Venue
	games   map[int]*models.Game
	stats   map[[2]int]int // (gameID, playerID) -> points

	nextTeamID   int
	nextPlayerID int
	nextVenueID  int
	nextGameID   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		teams:   make(map[int]*models.Team),
		players: make(map[int]*models.Player),
		venues:  make(map[int]*models.Venue),
		games:   make(map[int]*models.Game),
		stats:   make(map[[2]int]int),
	}
}

func (s *fakeStore) teamRepo() repositories.TeamRepository     { return &fakeTeamRepo{s} }
func (s *fakeStore) playerRepo() repositories.PlayerRepository { return &fakePlayerRepo{s} }
func (s *fakeStore) venueRepo() repositories.VenueRepository   { return &fakeVenueRepo{s} }
func (s *fakeStore) gameRepo() repositories.GameRepository     { return &fakeGameRepo{s} }
func (s *fakeStore) statRepo() repositories.StatRepository     { return &fakeStatRepo{s} }

// seedTeam creates a team with rosterSize players wearing 1..rosterSize.
func (s *fakeStore) seedTeam(name string, rosterSize int) *models.Team {
	s.nextTeamID++
	team := &models.Team{ID: s.nextTeamID, Name: name}
	s.teams[team.ID] = team
	for i := 1; i <= rosterSize; i++ {
		s.nextPlayerID++
		s.players[s.nextPlayerID] = &models.Player{
			ID:     s.nextPlayerID,
			Name:   name + " player",
			Jersey: i,
			TeamID: team.ID,
		}
	}
	return team
}

func (s *fakeStore) seedVenue(name string) *models.Venue {
	s.nextVenueID++
	venue := &models.Venue{ID: s.nextVenueID, Name: name, Available: true, Capacity: 1000}
	s.venues[venue.ID] = venue
	return venue
}

func (s *fakeStore) seedGame(team1, team2 *models.Team, venue *models.Venue, date time.Time, start, end string) *models.Game {
	s.nextGameID++
	game := &models.Game{
		ID:        s.nextGameID,
		Team1ID:   team1.ID,
		Team2ID:   team2.ID,
		VenueID:   venue.ID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
	s.games[game.ID] = game
	return game
}

func (s *fakeStore) finalizeGame(game *models.Game, team1Score, team2Score int) {
	game.Team1Score = team1Score
	game.Team2Score = team2Score
	game.IsFinal = true
	switch {
	case team1Score > team2Score:
		game.WinnerID = &game.Team1ID
	case team2Score > team1Score:
		game.WinnerID = &game.Team2ID
	}
}

func (s *fakeStore) countPlayers(teamID int) int {
	count := 0
	for _, p := range s.players {
		if p.TeamID == teamID {
			count++
		}
	}
	return count
}

type fakeTeamRepo struct{ s *fakeStore }

func (r *fakeTeamRepo) Create(ctx context.Context, team *models.Team) error {
	for _, t := range r.s.teams {
		if t.Name == team.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	r.s.nextTeamID++
	team.ID = r.s.nextTeamID
	stored := *team
	r.s.teams[team.ID] = &stored
	return nil
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, ok := r.s.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	out := *team
	return &out, nil
}

func (r *fakeTeamRepo) GetByName(ctx context.Context, name string) (*models.Team, error) {
	for _, team := range r.s.teams {
		if team.Name == name {
			out := *team
			return &out, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) List(ctx context.Context) ([]*models.Team, error) {
	teams := make([]*models.Team, 0, len(r.s.teams))
	for _, team := range r.s.teams {
		out := *team
		out.PlayerCount = r.s.countPlayers(team.ID)
		teams = append(teams, &out)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams, nil
}

func (r *fakeTeamRepo) UpdateName(ctx context.Context, id int, name string) error {
	team, ok := r.s.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	for _, t := range r.s.teams {
		if t.ID != id && t.Name == name {
			return repositories.ErrTeamNameConflict
		}
	}
	team.Name = name
	return nil
}

func (r *fakeTeamRepo) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	team, ok := r.s.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.LogoKey = logoKey
	return nil
}

func (r *fakeTeamRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.s.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.s.teams, id)
	for pid, p := range r.s.players {
		if p.TeamID == id {
			delete(r.s.players, pid)
		}
	}
	return nil
}

func (r *fakeTeamRepo) CountPlayers(ctx context.Context, teamID int) (int, error) {
	if _, ok := r.s.teams[teamID]; !ok {
		return 0, repositories.ErrTeamNotFound
	}
	return r.s.countPlayers(teamID), nil
}

func (r *fakeTeamRepo) RecalcCareerPoints(ctx context.Context, teamID int) (int, error) {
	team, ok := r.s.teams[teamID]
	if !ok {
		return 0, repositories.ErrTeamNotFound
	}
	total := 0
	for _, p := range r.s.players {
		if p.TeamID == teamID {
			total += p.CareerPoints
		}
	}
	team.CareerPoints = total
	return total, nil
}

func (r *fakeTeamRepo) AddWin(ctx context.Context, teamID int) error {
	team, ok := r.s.teams[teamID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.Wins++
	return nil
}

type fakePlayerRepo struct{ s *fakeStore }

func (r *fakePlayerRepo) Create(ctx context.Context, player *models.Player) error {
	if _, ok := r.s.teams[player.TeamID]; !ok {
		return repositories.ErrPlayerTeamInvalid
	}
	for _, p := range r.s.players {
		if p.TeamID == player.TeamID && p.Jersey == player.Jersey {
			return repositories.ErrJerseyConflict
		}
	}
	r.s.nextPlayerID++
	player.ID = r.s.nextPlayerID
	stored := *player
	r.s.players[player.ID] = &stored
	return nil
}

func (r *fakePlayerRepo) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player, ok := r.s.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	out := *player
	return &out, nil
}

func (r *fakePlayerRepo) ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	players := make([]*models.Player, 0)
	for _, p := range r.s.players {
		if p.TeamID == teamID {
			out := *p
			players = append(players, &out)
		}
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Jersey < players[j].Jersey })
	return players, nil
}

func (r *fakePlayerRepo) Update(ctx context.Context, player *models.Player) error {
	stored, ok := r.s.players[player.ID]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	for _, p := range r.s.players {
		if p.ID != player.ID && p.TeamID == stored.TeamID && p.Jersey == player.Jersey {
			return repositories.ErrJerseyConflict
		}
	}
	stored.Name = player.Name
	stored.Jersey = player.Jersey
	return nil
}

func (r *fakePlayerRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.s.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.s.players, id)
	return nil
}

func (r *fakePlayerRepo) AddCareerPoints(ctx context.Context, id int, delta int) error {
	player, ok := r.s.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	player.CareerPoints += delta
	return nil
}

type fakeVenueRepo struct{ s *fakeStore }

func (r *fakeVenueRepo) Create(ctx context.Context, venue *models.Venue) error {
	for _, v := range r.s.venues {
		if v.Name == venue.Name {
			return repositories.ErrVenueNameConflict
		}
	}
	r.s.nextVenueID++
	venue.ID = r.s.nextVenueID
	stored := *venue
	r.s.venues[venue.ID] = &stored
	return nil
}

func (r *fakeVenueRepo) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	venue, ok := r.s.venues[id]
	if !ok {
		return nil, repositories.ErrVenueNotFound
	}
	out := *venue
	return &out, nil
}

func (r *fakeVenueRepo) GetByName(ctx context.Context, name string) (*models.Venue, error) {
	for _, venue := range r.s.venues {
		if venue.Name == name {
			out := *venue
			return &out, nil
		}
	}
	return nil, repositories.ErrVenueNotFound
}

func (r *fakeVenueRepo) List(ctx context.Context) ([]*models.Venue, error) {
	venues := make([]*models.Venue, 0, len(r.s.venues))
	for _, venue := range r.s.venues {
		out := *venue
		venues = append(venues, &out)
	}
	sort.Slice(venues, func(i, j int) bool { return venues[i].Name < venues[j].Name })
	return venues, nil
}

func (r *fakeVenueRepo) Update(ctx context.Context, venue *models.Venue) error {
	stored, ok := r.s.venues[venue.ID]
	if !ok {
		return repositories.ErrVenueNotFound
	}
	*stored = *venue
	return nil
}

func (r *fakeVenueRepo) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	venue, ok := r.s.venues[id]
	if !ok {
		return repositories.ErrVenueNotFound
	}
	venue.LogoKey = logoKey
	return nil
}

func (r *fakeVenueRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.s.venues[id]; !ok {
		return repositories.ErrVenueNotFound
	}
	delete(r.s.venues, id)
	return nil
}

type fakeGameRepo struct{ s *fakeStore }

func (r *fakeGameRepo) Create(ctx context.Context, game *models.Game) error {
	r.s.nextGameID++
	game.ID = r.s.nextGameID
	stored := *game
	r.s.games[game.ID] = &stored
	return nil
}

func (r *fakeGameRepo) GetByID(ctx context.Context, id int) (*models.Game, error) {
	game, ok := r.s.games[id]
	if !ok {
		return nil, repositories.ErrGameNotFound
	}
	return r.withNames(game), nil
}

// withNames copies a stored game and fills the name fields the real
// repository populates through its joins.
func (r *fakeGameRepo) withNames(g *models.Game) *models.Game {
	out := *g
	if t, ok := r.s.teams[g.Team1ID]; ok {
		out.Team1Name = t.Name
	}
	if t, ok := r.s.teams[g.Team2ID]; ok {
		out.Team2Name = t.Name
	}
	if v, ok := r.s.venues[g.VenueID]; ok {
		out.VenueName = v.Name
	}
	return &out
}

func (r *fakeGameRepo) List(ctx context.Context) ([]*models.Game, error) {
	return r.collect(func(*models.Game) bool { return true }), nil
}

func (r *fakeGameRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.Game, error) {
	return r.collect(func(g *models.Game) bool {
		return !g.Date.Before(from) && !g.Date.After(to)
	}), nil
}

func (r *fakeGameRepo) ListByTeamOnDate(ctx context.Context, teamID int, date time.Time) ([]*models.Game, error) {
	return r.collect(func(g *models.Game) bool {
		return g.HasTeam(teamID) && sameDay(g.Date, date)
	}), nil
}

func (r *fakeGameRepo) ListByVenueOnDate(ctx context.Context, venueID int, date time.Time) ([]*models.Game, error) {
	return r.collect(func(g *models.Game) bool {
		return g.VenueID == venueID && sameDay(g.Date, date)
	}), nil
}

func (r *fakeGameRepo) FindFinalizedBetween(ctx context.Context, teamAID, teamBID int, from, to time.Time) (*models.Game, error) {
	for _, g := range r.s.games {
		if !g.IsFinal || g.Date.Before(from) || g.Date.After(to) {
			continue
		}
		if (g.Team1ID == teamAID && g.Team2ID == teamBID) || (g.Team1ID == teamBID && g.Team2ID == teamAID) {
			out := *g
			return &out, nil
		}
	}
	return nil, repositories.ErrGameNotFound
}

func (r *fakeGameRepo) Update(ctx context.Context, game *models.Game) error {
	stored, ok := r.s.games[game.ID]
	if !ok {
		return repositories.ErrGameNotFound
	}
	*stored = *game
	return nil
}

func (r *fakeGameRepo) SetScore(ctx context.Context, id int, team1Score, team2Score int) error {
	game, ok := r.s.games[id]
	if !ok {
		return repositories.ErrGameNotFound
	}
	game.Team1Score = team1Score
	game.Team2Score = team2Score
	return nil
}

func (r *fakeGameRepo) Finalize(ctx context.Context, id int, winnerID *int) error {
	game, ok := r.s.games[id]
	if !ok {
		return repositories.ErrGameNotFound
	}
	game.IsFinal = true
	game.WinnerID = winnerID
	return nil
}

func (r *fakeGameRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.s.games[id]; !ok {
		return repositories.ErrGameNotFound
	}
	delete(r.s.games, id)
	return nil
}

func (r *fakeGameRepo) DateBounds(ctx context.Context) (time.Time, time.Time, bool, error) {
	var min, max time.Time
	found := false
	for _, g := range r.s.games {
		if !found || g.Date.Before(min) {
			min = g.Date
		}
		if !found || g.Date.After(max) {
			max = g.Date
		}
		found = true
	}
	return min, max, found, nil
}

func (r *fakeGameRepo) ExistsInRange(ctx context.Context, from, to time.Time) (bool, error) {
	for _, g := range r.s.games {
		if !g.Date.Before(from) && !g.Date.After(to) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeGameRepo) collect(match func(*models.Game) bool) []*models.Game {
	games := make([]*models.Game, 0)
	for _, g := range r.s.games {
		if match(g) {
			games = append(games, r.withNames(g))
		}
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games
}

type fakeStatRepo struct{ s *fakeStore }

func (r *fakeStatRepo) ApplyDelta(ctx context.Context, gameID, playerID, delta int) (int, error) {
	key := [2]int{gameID, playerID}
	r.s.stats[key] += delta
	return r.s.stats[key], nil
}

func (r *fakeStatRepo) GetPoints(ctx context.Context, gameID, playerID int) (int, error) {
	return r.s.stats[[2]int{gameID, playerID}], nil
}

func (r *fakeStatRepo) SumForTeam(ctx context.Context, gameID, teamID int) (int, error) {
	total := 0
	for key, points := range r.s.stats {
		if key[0] != gameID {
			continue
		}
		if p, ok := r.s.players[key[1]]; ok && p.TeamID == teamID {
			total += points
		}
	}
	return total, nil
}

func (r *fakeStatRepo) ListForGame(ctx context.Context, gameID int) ([]*models.PlayerGameStat, error) {
	stats := make([]*models.PlayerGameStat, 0)
	for key, points := range r.s.stats {
		if key[0] == gameID {
			stats = append(stats, &models.PlayerGameStat{GameID: gameID, PlayerID: key[1], Points: points})
		}
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].PlayerID < stats[j].PlayerID })
	return stats, nil
}

// fakeNotifier records room broadcasts for assertions.
type fakeNotifier struct {
	rooms    []string
	messages []interface{}
}

func (n *fakeNotifier) BroadcastToRoom(roomID string, message interface{}) {
	n.rooms = append(n.rooms, roomID)
	n.messages = append(n.messages, message)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
