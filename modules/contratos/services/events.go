package services

import (
	"github.com/amarillaRodrigo/sigeled-own-sub002/pkg/sigeledapi"
)

type ContratoCreadoEvent struct {
	Contrato sigeledapi.Contrato
}

type ContratoEliminadoEvent struct {
	ID int
}

type TarifaActualizadaEvent struct {
	TarifaID int
	Tarifa   *sigeledapi.Tarifa
}
