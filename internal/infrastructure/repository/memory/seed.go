package memory

import (
	"time"

	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/manager"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/player"
	"github.com/kastanis/unrivaled-league-snapbacks-3s/internal/domain/schedule"
)

const (
	ClubBreeze    = "Breeze"
	ClubHive      = "Hive"
	ClubLaces     = "Laces"
	ClubLunarOwls = "Lunar Owls"
	ClubMist      = "Mist"
	ClubPhantom   = "Phantom"
	ClubRose      = "Rose"
	ClubVinyl     = "Vinyl"
)

// leagueTZ is Eastern time; every game tips off in Miami.
var leagueTZ = time.FixedZone("America/New_York", -5*60*60)

func SeedManagers() []manager.Manager {
	return []manager.Manager{
		{ID: "mgr-01", Name: "Priya", TeamName: "Full Court Press"},
		{ID: "mgr-02", Name: "Marcus", TeamName: "Glass Cleaners"},
		{ID: "mgr-03", Name: "Dana", TeamName: "Catch and Shoot"},
		{ID: "mgr-04", Name: "Theo", TeamName: "Pick Six"},
		{ID: "mgr-05", Name: "Renata", TeamName: "Buzzer Beaters"},
		{ID: "mgr-06", Name: "Jules", TeamName: "Fast Break Club"},
		{ID: "mgr-07", Name: "Omar", TeamName: "Midrange Mafia"},
		{ID: "mgr-08", Name: "Saskia", TeamName: "Triple Threat"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "ply-001", Name: "Napheesa Collier", ProTeam: ClubLunarOwls, Status: player.StatusActive},
		{ID: "ply-002", Name: "Skylar Diggins-Smith", ProTeam: ClubLunarOwls, Status: player.StatusActive},
		{ID: "ply-003", Name: "Courtney Williams", ProTeam: ClubLunarOwls, Status: player.StatusActive},
		{ID: "ply-004", Name: "Allisha Gray", ProTeam: ClubLunarOwls, Status: player.StatusActive},
		{ID: "ply-005", Name: "Shakira Austin", ProTeam: ClubLunarOwls, Status: player.StatusActive},
		{ID: "ply-006", Name: "Cameron Brink", ProTeam: ClubLunarOwls, Status: player.StatusActive},
		{ID: "ply-007", Name: "Breanna Stewart", ProTeam: ClubMist, Status: player.StatusActive},
		{ID: "ply-008", Name: "Jewell Loyd", ProTeam: ClubMist, Status: player.StatusActive},
		{ID: "ply-009", Name: "Courtney Vandersloot", ProTeam: ClubMist, Status: player.StatusActive},
		{ID: "ply-010", Name: "DiJonai Carrington", ProTeam: ClubMist, Status: player.StatusActive},
		{ID: "ply-011", Name: "Aaliyah Edwards", ProTeam: ClubMist, Status: player.StatusActive},
		{ID: "ply-012", Name: "Paige Bueckers", ProTeam: ClubMist, Status: player.StatusActive},
		{ID: "ply-013", Name: "Chelsea Gray", ProTeam: ClubRose, Status: player.StatusActive},
		{ID: "ply-014", Name: "Kahleah Copper", ProTeam: ClubRose, Status: player.StatusActive},
		{ID: "ply-015", Name: "Angel Reese", ProTeam: ClubRose, Status: player.StatusActive},
		{ID: "ply-016", Name: "Brittney Sykes", ProTeam: ClubRose, Status: player.StatusActive},
		{ID: "ply-017", Name: "Azura Stevens", ProTeam: ClubRose, Status: player.StatusActive},
		{ID: "ply-018", Name: "Lexie Hull", ProTeam: ClubRose, Status: player.StatusActive},
		{ID: "ply-019", Name: "Rhyne Howard", ProTeam: ClubVinyl, Status: player.StatusActive},
		{ID: "ply-020", Name: "Arike Ogunbowale", ProTeam: ClubVinyl, Status: player.StatusActive},
		{ID: "ply-021", Name: "Dearica Hamby", ProTeam: ClubVinyl, Status: player.StatusActive},
		{ID: "ply-022", Name: "Aliyah Boston", ProTeam: ClubVinyl, Status: player.StatusActive},
		{ID: "ply-023", Name: "Jordin Canada", ProTeam: ClubVinyl, Status: player.StatusActive},
		{ID: "ply-024", Name: "Rae Burrell", ProTeam: ClubVinyl, Status: player.StatusActive},
		{ID: "ply-025", Name: "Kayla McBride", ProTeam: ClubLaces, Status: player.StatusActive},
		{ID: "ply-026", Name: "Jackie Young", ProTeam: ClubLaces, Status: player.StatusActive},
		{ID: "ply-027", Name: "Alyssa Thomas", ProTeam: ClubLaces, Status: player.StatusActive},
		{ID: "ply-028", Name: "Tiffany Hayes", ProTeam: ClubLaces, Status: player.StatusActive},
		{ID: "ply-029", Name: "Kate Martin", ProTeam: ClubLaces, Status: player.StatusActive},
		{ID: "ply-030", Name: "Stefanie Dolson", ProTeam: ClubLaces, Status: player.StatusActive},
		{ID: "ply-031", Name: "Sabrina Ionescu", ProTeam: ClubPhantom, Status: player.StatusActive},
		{ID: "ply-032", Name: "Brittney Griner", ProTeam: ClubPhantom, Status: player.StatusActive},
		{ID: "ply-033", Name: "Natasha Cloud", ProTeam: ClubPhantom, Status: player.StatusActive},
		{ID: "ply-034", Name: "Marina Mabrey", ProTeam: ClubPhantom, Status: player.StatusActive},
		{ID: "ply-035", Name: "Katie Lou Samuelson", ProTeam: ClubPhantom, Status: player.StatusActive},
		{ID: "ply-036", Name: "Satou Sabally", ProTeam: ClubPhantom, Status: player.StatusActive},
		{ID: "ply-037", Name: "Kelsey Plum", ProTeam: ClubBreeze, Status: player.StatusActive},
		{ID: "ply-038", Name: "Kelsey Mitchell", ProTeam: ClubBreeze, Status: player.StatusActive},
		{ID: "ply-039", Name: "NaLyssa Smith", ProTeam: ClubBreeze, Status: player.StatusActive},
		{ID: "ply-040", Name: "Ezi Magbegor", ProTeam: ClubBreeze, Status: player.StatusActive},
		{ID: "ply-041", Name: "Sophie Cunningham", ProTeam: ClubBreeze, Status: player.StatusActive},
		{ID: "ply-042", Name: "Veronica Burton", ProTeam: ClubBreeze, Status: player.StatusActive},
		{ID: "ply-043", Name: "Rickea Jackson", ProTeam: ClubHive, Status: player.StatusInjured},
		{ID: "ply-044", Name: "Aari McDonald", ProTeam: ClubHive, Status: player.StatusActive},
		{ID: "ply-045", Name: "Maddy Siegrist", ProTeam: ClubHive, Status: player.StatusActive},
		{ID: "ply-046", Name: "Haley Jones", ProTeam: ClubHive, Status: player.StatusActive},
		{ID: "ply-047", Name: "Dana Evans", ProTeam: ClubHive, Status: player.StatusActive},
		{ID: "ply-048", Name: "Li Yueru", ProTeam: ClubHive, Status: player.StatusActive},
	}
}

func SeedSchedule() []schedule.Game {
	return []schedule.Game{
		{ID: "game-0105-a", Date: "2026-01-05", TipoffAt: time.Date(2026, 1, 5, 19, 15, 0, 0, leagueTZ), HomeTeam: ClubLunarOwls, AwayTeam: ClubMist, Status: schedule.StatusScheduled},
		{ID: "game-0105-b", Date: "2026-01-05", TipoffAt: time.Date(2026, 1, 5, 20, 15, 0, 0, leagueTZ), HomeTeam: ClubRose, AwayTeam: ClubVinyl, Status: schedule.StatusScheduled},
		{ID: "game-0109-a", Date: "2026-01-09", TipoffAt: time.Date(2026, 1, 9, 19, 15, 0, 0, leagueTZ), HomeTeam: ClubLaces, AwayTeam: ClubPhantom, Status: schedule.StatusScheduled},
		{ID: "game-0109-b", Date: "2026-01-09", TipoffAt: time.Date(2026, 1, 9, 20, 15, 0, 0, leagueTZ), HomeTeam: ClubBreeze, AwayTeam: ClubHive, Status: schedule.StatusScheduled},
		{ID: "game-0110-a", Date: "2026-01-10", TipoffAt: time.Date(2026, 1, 10, 19, 15, 0, 0, leagueTZ), HomeTeam: ClubMist, AwayTeam: ClubRose, Status: schedule.StatusScheduled},
		{ID: "game-0110-b", Date: "2026-01-10", TipoffAt: time.Date(2026, 1, 10, 20, 15, 0, 0, leagueTZ), HomeTeam: ClubVinyl, AwayTeam: ClubLaces, Status: schedule.StatusScheduled},
		{ID: "game-0112-a", Date: "2026-01-12", TipoffAt: time.Date(2026, 1, 12, 19, 15, 0, 0, leagueTZ), HomeTeam: ClubPhantom, AwayTeam: ClubBreeze, Status: schedule.StatusScheduled},
		{ID: "game-0112-b", Date: "2026-01-12", TipoffAt: time.Date(2026, 1, 12, 20, 15, 0, 0, leagueTZ), HomeTeam: ClubHive, AwayTeam: ClubLunarOwls, Status: schedule.StatusScheduled},
		{ID: "game-0116-a", Date: "2026-01-16", TipoffAt: time.Date(2026, 1, 16, 19, 15, 0, 0, leagueTZ), HomeTeam: ClubLunarOwls, AwayTeam: ClubRose, Status: schedule.StatusScheduled},
		{ID: "game-0116-b", Date: "2026-01-16", TipoffAt: time.Date(2026, 1, 16, 20, 15, 0, 0, leagueTZ), HomeTeam: ClubMist, AwayTeam: ClubLaces, Status: schedule.StatusScheduled},
		{ID: "game-0117-a", Date: "2026-01-17", TipoffAt: time.Date(2026, 1, 17, 19, 15, 0, 0, leagueTZ), HomeTeam: ClubVinyl, AwayTeam: ClubPhantom, Status: schedule.StatusScheduled},
		{ID: "game-0117-b", Date: "2026-01-17", TipoffAt: time.Date(2026, 1, 17, 20, 15, 0, 0, leagueTZ), HomeTeam: ClubBreeze, AwayTeam: ClubLunarOwls, Status: schedule.StatusScheduled},
		{ID: "game-0119-a", Date: "2026-01-19", TipoffAt: time.Date(2026, 1, 19, 19, 15, 0, 0, leagueTZ), HomeTeam: ClubHive, AwayTeam: ClubMist, Status: schedule.StatusScheduled},
		{ID: "game-0119-b", Date: "2026-01-19", TipoffAt: time.Date(2026, 1, 19, 20, 15, 0, 0, leagueTZ), HomeTeam: ClubRose, AwayTeam: ClubLaces, Status: schedule.StatusScheduled},
	}
}
