package models

// AccountRecord is one billing account as returned by the upstream API.
// Every field is optional in practice; accessors below are nil-safe so
// derivations never need to special-case missing sub-sections.
type AccountRecord struct {
	EleBill           *BillInfo      `json:"eleBill,omitempty"`
	ArrearsOfFees     Flex           `json:"arrearsOfFees,omitempty"`
	MonthElecQuantity *MonthQuantity `json:"monthElecQuantity,omitempty"`
	DayElecQuantity31 *DayQuantity   `json:"dayElecQuantity31,omitempty"`
	StepElecQuantity  []StepRecord   `json:"stepElecQuantity,omitempty"`
}

// BillInfo is the bill summary sub-section.
type BillInfo struct {
	SumMoney Flex `json:"sumMoney"`
}

// MonthQuantity holds the monthly usage list plus its aggregate info.
type MonthQuantity struct {
	DataInfo    MonthDataInfo `json:"dataInfo"`
	MothEleList []MonthUsage  `json:"mothEleList"`
}

// MonthDataInfo carries year-to-date aggregates over the monthly list.
type MonthDataInfo struct {
	TotalEleCost Flex `json:"totalEleCost"`
	TotalEleNum  Flex `json:"totalEleNum"`
}

// MonthUsage is one monthly entry. The usage quantity and the cost each
// appear under one of several legacy field names depending on upstream
// version; resolve them through UsageValue and CostValue only.
type MonthUsage struct {
	Month        string `json:"month,omitempty"`
	MonthEleNum  Flex   `json:"monthEleNum,omitempty"`
	EleNum       Flex   `json:"eleNum,omitempty"`
	Usage        Flex   `json:"usage,omitempty"`
	MonthElec    Flex   `json:"monthElec,omitempty"`
	MonthEleCost Flex   `json:"monthEleCost,omitempty"`
	Cost         Flex   `json:"cost,omitempty"`
	EleCost      Flex   `json:"eleCost,omitempty"`
	Level        int    `json:"level,omitempty"`
}

// UsageValue resolves the monthly usage quantity across its aliases.
func (m MonthUsage) UsageValue() Flex {
	return FirstFlex(m.MonthEleNum, m.EleNum, m.Usage, m.MonthElec)
}

// CostValue resolves the monthly cost across its aliases.
func (m MonthUsage) CostValue() Flex {
	return FirstFlex(m.MonthEleCost, m.Cost, m.EleCost)
}

// DayQuantity holds the last-31-days usage list.
type DayQuantity struct {
	SevenEleList []DayUsage `json:"sevenEleList"`
}

// DayUsage is one daily entry. Day is a date string starting with the year
// and month ("2025-08-14", "20250814").
type DayUsage struct {
	Day      string `json:"day"`
	DayElePq Flex   `json:"dayElePq"`
}

// StepRecord is one tiered-pricing record.
type StepRecord struct {
	ElectricParticulars *StepParticulars `json:"electricParticulars,omitempty"`
}

// StepParticulars carries the authoritative year-to-date totals of a step
// record.
type StepParticulars struct {
	TotalAmount Flex `json:"totalAmount,omitempty"`
	TotalPq     Flex `json:"totalPq,omitempty"`
	TotalYearPq Flex `json:"totalYearPq,omitempty"`
}

// Balance returns the bill summary amount, zero Flex when absent.
func (r AccountRecord) Balance() Flex {
	if r.EleBill == nil {
		return Flex{}
	}
	return r.EleBill.SumMoney
}

// MonthlyEntries returns the monthly usage list, nil-safe.
func (r AccountRecord) MonthlyEntries() []MonthUsage {
	if r.MonthElecQuantity == nil {
		return nil
	}
	return r.MonthElecQuantity.MothEleList
}

// MonthlyInfo returns the monthly aggregate info, zero-valued when absent.
func (r AccountRecord) MonthlyInfo() MonthDataInfo {
	if r.MonthElecQuantity == nil {
		return MonthDataInfo{}
	}
	return r.MonthElecQuantity.DataInfo
}

// DailyEntries returns the last-31-days usage list, nil-safe.
func (r AccountRecord) DailyEntries() []DayUsage {
	if r.DayElecQuantity31 == nil {
		return nil
	}
	return r.DayElecQuantity31.SevenEleList
}

// FirstStepParticulars returns the totals of the first step record, or nil
// when no step record carries them.
func (r AccountRecord) FirstStepParticulars() *StepParticulars {
	if len(r.StepElecQuantity) == 0 {
		return nil
	}
	return r.StepElecQuantity[0].ElectricParticulars
}

// EmptyAccountRecord returns a fully populated zero-valued record so
// downstream derivations have no absent-data path: zero balance, no
// arrears, empty usage lists.
func EmptyAccountRecord() AccountRecord {
	return AccountRecord{
		EleBill:           &BillInfo{SumMoney: NewFlex("0.00")},
		MonthElecQuantity: &MonthQuantity{MothEleList: []MonthUsage{}},
		DayElecQuantity31: &DayQuantity{SevenEleList: []DayUsage{}},
		StepElecQuantity:  []StepRecord{},
	}
}

// SelectedAccount pairs one account's record with the fetch time of the
// payload it came from, in epoch milliseconds.
type SelectedAccount struct {
	AccountRecord
	LastUpdateTime int64 `json:"lastUpdateTime"`
}
