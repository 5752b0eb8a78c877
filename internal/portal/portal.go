// Package portal owns the per-process set of stores and the spreadsheet
// source they are loaded from.
package portal

import (
	"context"
	"log/slog"
	"sync"

	"github.com/smartworld/smartdesk/internal"
	"github.com/smartworld/smartdesk/internal/alert"
	"github.com/smartworld/smartdesk/internal/attendance"
	"github.com/smartworld/smartdesk/internal/core/events"
	"github.com/smartworld/smartdesk/internal/directory"
	"github.com/smartworld/smartdesk/internal/hierarchy"
	"github.com/smartworld/smartdesk/internal/policy"
	"github.com/smartworld/smartdesk/internal/room"
	"github.com/smartworld/smartdesk/internal/spreadsheet"
)

type Portal struct {
	Directory  *directory.Service
	Hierarchy  *hierarchy.Service
	Rooms      *room.Service
	Alerts     *alert.Service
	Attendance *attendance.Service
	Policies   *policy.Service

	source   spreadsheet.Source
	bus      events.Publisher
	logger   *slog.Logger
	reloadMu sync.Mutex
}

type Stats struct {
	Employees          int  `json:"employees"`
	Departments        int  `json:"departments"`
	Locations          int  `json:"locations"`
	AttendanceRecords  int  `json:"attendanceRecords"`
	HierarchyRelations int  `json:"hierarchyRelations"`
	PlaceholderData    bool `json:"placeholderAttendance"`
}

func New(p Portal, source spreadsheet.Source, bus events.Publisher, logger *slog.Logger) *Portal {
	return &Portal{
		Directory:  p.Directory,
		Hierarchy:  p.Hierarchy,
		Rooms:      p.Rooms,
		Alerts:     p.Alerts,
		Attendance: p.Attendance,
		Policies:   p.Policies,
		source:     source,
		bus:        bus,
		logger:     logger,
	}
}

// Init restores persisted state and seeds demo content into empty tables.
func (p *Portal) Init(ctx context.Context) error {
	if err := p.Hierarchy.Init(ctx); err != nil {
		return err
	}
	if err := p.Rooms.Init(ctx); err != nil {
		return err
	}
	if n, err := p.Alerts.SeedDemo(ctx); err != nil {
		return err
	} else if n > 0 {
		p.logger.Info("seeded demo alerts", "count", n)
	}
	if n, err := p.Policies.SeedSamples(ctx); err != nil {
		return err
	} else if n > 0 {
		p.logger.Info("seeded sample policies", "count", n)
	}
	return nil
}

// Load reads the roster and attendance log. A roster failure is returned;
// an attendance failure falls back to placeholder records.
func (p *Portal) Load(ctx context.Context) error {
	p.reloadMu.Lock()
	defer p.reloadMu.Unlock()

	if err := p.loadRoster(ctx); err != nil {
		return err
	}
	p.loadAttendance(ctx)
	p.Directory.AddLocations(p.Rooms.Locations()...)
	return nil
}

// Reload re-reads both spreadsheets, keeping the current directory when the
// roster cannot be read.
func (p *Portal) Reload(ctx context.Context) (Stats, error) {
	if err := p.Load(ctx); err != nil {
		return Stats{}, err
	}
	return p.Stats(), nil
}

func (p *Portal) loadRoster(ctx context.Context) error {
	rows, err := p.source.Roster(ctx)
	if err == nil {
		err = p.Directory.Load(ctx, rows)
	}
	if err != nil {
		p.logger.Error("roster load failed", "error", err)
		p.publish(ctx, events.NewRosterReloadedEvent(p.Directory.Count(), false))
		if _, ok := internal.IsAppError(err); ok {
			return err
		}
		return internal.NewLoadFailure("failed to load roster", err)
	}
	p.publish(ctx, events.NewRosterReloadedEvent(p.Directory.Count(), true))
	return nil
}

func (p *Portal) loadAttendance(ctx context.Context) {
	rows, err := p.source.Attendance(ctx)
	if err != nil {
		p.logger.Warn("attendance load failed", "error", err)
		employees := p.Directory.List(directory.Filter{})
		people := make([]attendance.Person, 0, len(employees))
		for _, e := range employees {
			people = append(people, attendance.Person{ID: e.ID, Name: e.Name})
		}
		p.Attendance.LoadPlaceholder(people)
		return
	}
	p.Attendance.Load(rows)
}

func (p *Portal) Stats() Stats {
	return Stats{
		Employees:          p.Directory.Count(),
		Departments:        len(p.Directory.Departments()) - 1,
		Locations:          len(p.Directory.Locations()) - 1,
		AttendanceRecords:  p.Attendance.Count(),
		HierarchyRelations: p.Hierarchy.Count(),
		PlaceholderData:    p.Attendance.IsPlaceholder(),
	}
}

// Lookup resolves hierarchy members against the directory.
func (p *Portal) Lookup(id string) (hierarchy.Member, bool) {
	e, ok := p.Directory.Get(id)
	if !ok {
		return hierarchy.Member{}, false
	}
	return hierarchy.Member{
		ID:           e.ID,
		Name:         e.Name,
		Department:   e.Department,
		Grade:        e.Grade,
		Location:     e.Location,
		ProfileImage: e.ProfileImage,
	}, true
}

func (p *Portal) publish(ctx context.Context, e events.Event) {
	if p.bus == nil {
		return
	}
	if err := p.bus.Publish(ctx, e); err != nil {
		p.logger.Warn("failed to publish event", "type", e.EventType(), "error", err)
	}
}
