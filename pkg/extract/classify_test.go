package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/corteo/pkg/domain"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier(nil, nil)

	tests := []struct {
		name         string
		text         string
		wantCategory domain.Category
		wantType     domain.EventType
	}{
		{name: "pride", text: "Milano Pride 2025, tutte e tutti in strada", wantCategory: domain.CategoryLGBTQ, wantType: domain.EventProtest},
		{name: "caps corteo", text: "CORTEO SABATO 28 GIUGNO, ORE 17 STAZIONE VENEZIA S.LUCIA",
			wantCategory: domain.CategoryOther, wantType: domain.EventProtest},
		{name: "strike", text: "Sciopero generale dei lavoratori della logistica", wantCategory: domain.CategoryLabor, wantType: domain.EventProtest},
		{name: "climate assembly", text: "Assemblea pubblica sulla crisi climatica", wantCategory: domain.CategoryEnvironment, wantType: domain.EventAssembly},
		{name: "accents folded", text: "Sanità pubblica: conferenza con medici e infermieri",
			wantCategory: domain.CategoryHealthEdu, wantType: domain.EventTalk},
		{name: "workshop", text: "Laboratorio di autodifesa femminista", wantCategory: domain.CategoryWomenRights, wantType: domain.EventWorkshop},
		{name: "peace", text: "Presidio per Gaza e per il cessate il fuoco", wantCategory: domain.CategoryPeace, wantType: domain.EventProtest},
		{name: "antimafia", text: "Incontro sulla legalità e contro la mafia", wantCategory: domain.CategoryTransparency, wantType: domain.EventTalk},
		{name: "stem does not match inside word", text: "Uno spazio capace di accogliere", wantCategory: domain.CategoryOther, wantType: domain.EventOther},
		{name: "whole word does not match prefix", text: "La transizione energetica", wantCategory: domain.CategoryOther, wantType: domain.EventOther},
		{name: "empty", text: "", wantCategory: domain.CategoryOther, wantType: domain.EventOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.Classify(tt.text)
			assert.Equal(t, tt.wantCategory, res.Category)
			assert.Equal(t, tt.wantType, res.EventType)
		})
	}
}

func TestClassifier_Deterministic(t *testing.T) {
	c := NewClassifier(nil, nil)
	text := "Corteo antifascista e assemblea per la pace e il clima"
	first := c.Classify(text)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, c.Classify(text))
	}
	assert.Equal(t, domain.CategoryEnvironment, first.Category, "first rule in declaration order wins")
	assert.Equal(t, domain.EventProtest, first.EventType)
}

func TestClassifier_CustomRules(t *testing.T) {
	c := NewClassifier(
		[]Rule[domain.Category]{{Label: domain.CategoryPeace, Keywords: []string{"Disarmo*"}}, {Label: domain.CategoryLabor, Keywords: []string{""}}},
		[]Rule[domain.EventType]{{Label: domain.EventTalk, Keywords: []string{"Tavola Rotonda"}}},
	)
	res := c.Classify("Tavola rotonda sul DISARMO nucleare")
	assert.Equal(t, domain.CategoryPeace, res.Category)
	assert.Equal(t, domain.EventTalk, res.EventType)

	res = c.Classify("corteo")
	assert.Equal(t, domain.CategoryOther, res.Category)
	assert.Equal(t, domain.EventOther, res.EventType)
}
