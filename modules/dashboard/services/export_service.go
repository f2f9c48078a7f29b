package services

import (
	"bytes"
	"context"
	"sort"
	"time"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/amarillaRodrigo/sigeled-own-sub002/modules/contratos/domain/tarifa"
	contratossvc "github.com/amarillaRodrigo/sigeled-own-sub002/modules/contratos/services"
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportService renders the contract roll-up as a downloadable workbook.
type ExportService struct {
	resumen *contratossvc.ResumenService
	now     func() time.Time
}

func NewExportService(resumen *contratossvc.ResumenService) *ExportService {
	return &ExportService{resumen: resumen, now: time.Now}
}

func (s *ExportService) ResumenXLSX(ctx context.Context) (*sigeledapi.Descarga, error) {
	resumen, err := s.resumen.Resumen(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Resumen"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	write(1, 1, "Indicador")
	write(2, 1, "Valor")
	indicadores := []struct {
		nombre string
		valor  any
	}{
		{"Contratos totales", resumen.TotalContratos},
		{"Contratos activos", resumen.ContratosActivos},
		{"Contratos próximos a finalizar", resumen.ContratosProximos},
		{"Contratos por comenzar", resumen.ContratosPorComenzar},
		{"Contratos finalizados", resumen.ContratosFinalizados},
		{"Perfiles con cargo", resumen.PerfilesConCargo},
		{"Cargos totales", resumen.TotalCargos},
		{"Promedio monto hora", resumen.PromedioMontoHora.InexactFloat64()},
	}
	for i, ind := range indicadores {
		write(1, i+2, ind.nombre)
		write(2, i+2, ind.valor)
	}

	const cargosSheet = "Cargos"
	if _, err := f.NewSheet(cargosSheet); err != nil {
		return nil, err
	}
	writeCargos := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(cargosSheet, cell, v)
	}
	headers := []string{"Perfil", "Cargo", "Horas semanales", "Subtotal mensual", "Contratos", "Activos"}
	for i, h := range headers {
		writeCargos(i+1, 1, h)
	}

	keys := make([]tarifa.CargoKey, 0, len(resumen.Cargos))
	for key := range resumen.Cargos {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].IDPerfil != keys[j].IDPerfil {
			return keys[i].IDPerfil < keys[j].IDPerfil
		}
		return keys[i].CodigoCargo < keys[j].CodigoCargo
	})
	for i, key := range keys {
		stats := resumen.Cargos[key]
		row := i + 2
		writeCargos(1, row, key.IDPerfil)
		writeCargos(2, row, key.CodigoCargo)
		writeCargos(3, row, stats.HorasSemanales.InexactFloat64())
		writeCargos(4, row, stats.SubtotalMensual.InexactFloat64())
		writeCargos(5, row, len(stats.Contratos))
		writeCargos(6, row, len(stats.ContratosActivos))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "escribiendo planilla")
	}

	return &sigeledapi.Descarga{
		Nombre:      "resumen_" + s.now().Format("2006-01-02") + ".xlsx",
		ContentType: xlsxContentType,
		Datos:       buf.Bytes(),
	}, nil
}
