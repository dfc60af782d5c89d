package records

import (
	"context"
	"io/fs"
	"os"
	"strings"
	"time"

	"horta/entities"
)

// Files names the CSV file of each table inside the source file system.
type Files struct {
	Beds         string
	Species      string
	Plantings    string
	Observations string
	Harvests     string
	Events       string
}

// DefaultFiles are the file names the garden spreadsheets are exported with.
var DefaultFiles = Files{
	Beds:         "canteiros.csv",
	Species:      "especies.csv",
	Plantings:    "plantios.csv",
	Observations: "observacoes.csv",
	Harvests:     "colheitas.csv",
	Events:       "eventos_manejo.csv",
}

// Load reads all six tables. Missing files and unparseable values are
// reported as warnings; only an unreadable existing file is an error.
func Load(fsys fs.FS, files Files) (*Snapshot, []Warning, error) {
	l := &loader{fsys: fsys}
	snap := &Snapshot{}
	var w []Warning

	if t := l.read(files.Beds); t != nil {
		snap.Beds, w = parseBeds(t)
		l.warns = append(l.warns, w...)
	}
	if t := l.read(files.Species); t != nil {
		snap.Species, w = parseSpecies(t)
		l.warns = append(l.warns, w...)
	}
	if t := l.read(files.Plantings); t != nil {
		snap.Plantings, w = parsePlantings(t)
		l.warns = append(l.warns, w...)
	}
	if t := l.read(files.Observations); t != nil {
		snap.Observations, w = parseObservations(t)
		l.warns = append(l.warns, w...)
	}
	if t := l.read(files.Harvests); t != nil {
		snap.Harvests, w = parseHarvests(t)
		l.warns = append(l.warns, w...)
	}
	if t := l.read(files.Events); t != nil {
		snap.Events, w = parseEvents(t)
		l.warns = append(l.warns, w...)
	}
	if l.err != nil {
		return nil, l.warns, l.err
	}
	snap.LoadedAt = time.Now()
	return snap, l.warns, nil
}

// loader stops reading after the first hard error.
type loader struct {
	fsys  fs.FS
	warns []Warning
	err   error
}

func (l *loader) read(name string) *csvTable {
	if l.err != nil {
		return nil
	}
	t, w, err := readTable(l.fsys, name)
	l.warns = append(l.warns, w...)
	if err != nil {
		l.err = err
		return nil
	}
	return t
}

func parseBeds(t *csvTable) ([]entities.Bed, []Warning) {
	cID := t.col("canteiro_id", "bed_id", "id")
	cName := t.col("nome", "name", "canteiro", "bed_name")
	cLoc := t.col("localizacao", "local", "location")
	cArea := t.col("area_m2", "area", "area_m²")
	warns := t.requireColumns(map[string]int{"canteiro_id": cID, "nome": cName})

	cc := newCoercions(t.source)
	out := make([]entities.Bed, 0, len(t.rows))
	for _, rec := range t.rows {
		id, ok := ParseID(get(rec, cID))
		cc.note("canteiro_id", ok)
		area, ok := ParseMeasure(get(rec, cArea))
		cc.note("area_m2", ok)
		out = append(out, entities.Bed{
			BedID:    id,
			Name:     strings.TrimSpace(get(rec, cName)),
			Location: strings.TrimSpace(get(rec, cLoc)),
			AreaM2:   area,
		})
	}
	return out, append(warns, cc.warnings()...)
}

func parseSpecies(t *csvTable) ([]entities.Species, []Warning) {
	cID := t.col("especie_id", "species_id", "id")
	cName := t.col("nome_comum", "common_name", "nome", "name")
	warns := t.requireColumns(map[string]int{"especie_id": cID, "nome_comum": cName})

	cc := newCoercions(t.source)
	out := make([]entities.Species, 0, len(t.rows))
	for _, rec := range t.rows {
		id, ok := ParseID(get(rec, cID))
		cc.note("especie_id", ok)
		out = append(out, entities.Species{SpeciesID: id, CommonName: strings.TrimSpace(get(rec, cName))})
	}
	return out, append(warns, cc.warnings()...)
}

func parsePlantings(t *csvTable) ([]entities.Planting, []Warning) {
	cID := t.col("plantio_id", "planting_id", "id")
	cBed := t.col("canteiro_id", "bed_id")
	cSp := t.col("especie_id", "species_id")
	cDate := t.col("data_plantio", "planting_date", "date")
	cResp := t.col("responsavel", "responsible")
	cMethod := t.col("metodo", "method")
	cNotes := t.col("notas", "notes", "nota")
	warns := t.requireColumns(map[string]int{
		"plantio_id": cID, "canteiro_id": cBed, "especie_id": cSp, "data_plantio": cDate,
	})

	cc := newCoercions(t.source)
	out := make([]entities.Planting, 0, len(t.rows))
	for _, rec := range t.rows {
		p := entities.Planting{
			Responsible: strings.TrimSpace(get(rec, cResp)),
			Method:      strings.TrimSpace(get(rec, cMethod)),
			Notes:       strings.TrimSpace(get(rec, cNotes)),
		}
		var ok bool
		p.PlantingID, ok = ParseID(get(rec, cID))
		cc.note("plantio_id", ok)
		p.BedID, ok = ParseID(get(rec, cBed))
		cc.note("canteiro_id", ok)
		p.SpeciesID, ok = ParseID(get(rec, cSp))
		cc.note("especie_id", ok)
		p.PlantingDate, ok = ParseDate(get(rec, cDate))
		cc.note("data_plantio", ok)
		out = append(out, p)
	}
	return out, append(warns, cc.warnings()...)
}

func parseObservations(t *csvTable) ([]entities.Observation, []Warning) {
	cID := t.col("observacao_id", "observation_id", "id")
	cPl := t.col("plantio_id", "planting_id")
	cDate := t.col("data_observacao", "observation_date", "date")
	cHeight := t.col("altura_cm", "height_cm", "altura")
	cPests := t.col("pragas_observadas", "pests_observed", "pragas")
	cComm := t.col("comentarios", "comments", "comentario")
	warns := t.requireColumns(map[string]int{"plantio_id": cPl, "data_observacao": cDate})

	cc := newCoercions(t.source)
	out := make([]entities.Observation, 0, len(t.rows))
	for _, rec := range t.rows {
		o := entities.Observation{
			PestsObserved: ParseBool(get(rec, cPests)),
			Comments:      strings.TrimSpace(get(rec, cComm)),
		}
		var ok bool
		o.ObservationID, ok = ParseID(get(rec, cID))
		cc.note("observacao_id", ok)
		o.PlantingID, ok = ParseID(get(rec, cPl))
		cc.note("plantio_id", ok)
		o.ObservationDate, ok = ParseDate(get(rec, cDate))
		cc.note("data_observacao", ok)
		o.HeightCM, ok = ParseMeasure(get(rec, cHeight))
		cc.note("altura_cm", ok)
		out = append(out, o)
	}
	return out, append(warns, cc.warnings()...)
}

func parseHarvests(t *csvTable) ([]entities.Harvest, []Warning) {
	cID := t.col("colheita_id", "harvest_id", "id")
	cPl := t.col("plantio_id", "planting_id")
	cDate := t.col("data_colheita", "harvest_date", "date")
	cQty := t.col("quantidade_colhida", "quantity", "quantidade")
	warns := t.requireColumns(map[string]int{"plantio_id": cPl, "data_colheita": cDate, "quantidade_colhida": cQty})

	cc := newCoercions(t.source)
	out := make([]entities.Harvest, 0, len(t.rows))
	for _, rec := range t.rows {
		var h entities.Harvest
		var ok bool
		h.HarvestID, ok = ParseID(get(rec, cID))
		cc.note("colheita_id", ok)
		h.PlantingID, ok = ParseID(get(rec, cPl))
		cc.note("plantio_id", ok)
		h.HarvestDate, ok = ParseDate(get(rec, cDate))
		cc.note("data_colheita", ok)
		h.Quantity, ok = ParseQuantity(get(rec, cQty))
		cc.note("quantidade_colhida", ok)
		out = append(out, h)
	}
	return out, append(warns, cc.warnings()...)
}

func parseEvents(t *csvTable) ([]entities.ManagementEvent, []Warning) {
	cID := t.col("evento_id", "event_id", "id")
	cPl := t.col("plantio_id", "planting_id")
	cDate := t.col("data_evento", "event_date", "date")
	cType := t.col("tipo_evento", "event_type", "tipo")
	warns := t.requireColumns(map[string]int{"plantio_id": cPl, "data_evento": cDate})

	cc := newCoercions(t.source)
	out := make([]entities.ManagementEvent, 0, len(t.rows))
	for _, rec := range t.rows {
		e := entities.ManagementEvent{EventType: EventType(get(rec, cType))}
		var ok bool
		e.EventID, ok = ParseID(get(rec, cID))
		cc.note("evento_id", ok)
		e.PlantingID, ok = ParseID(get(rec, cPl))
		cc.note("plantio_id", ok)
		e.EventDate, ok = ParseDate(get(rec, cDate))
		cc.note("data_evento", ok)
		out = append(out, e)
	}
	return out, append(warns, cc.warnings()...)
}

// CSVSource loads the tables from a directory on disk.
type CSVSource struct {
	Dir   string
	Files Files
}

func NewCSVSource(dir string) *CSVSource { return &CSVSource{Dir: dir, Files: DefaultFiles} }

func (s *CSVSource) Load(ctx context.Context) (*Snapshot, []Warning, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return Load(os.DirFS(s.Dir), s.Files)
}
