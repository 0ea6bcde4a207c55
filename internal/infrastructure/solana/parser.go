package solana

import (
	"encoding/json"

	"github.com/gagliardetto/solana-go/rpc"

	"github.com/bimakw/wallet-analyzer/internal/domain/entities"
)

// ConvertSignatures maps RPC signature records to domain signature infos
func ConvertSignatures(sigs []*rpc.TransactionSignature) []entities.SignatureInfo {
	out := make([]entities.SignatureInfo, 0, len(sigs))
	for _, s := range sigs {
		if s == nil {
			continue
		}

		info := entities.SignatureInfo{
			Signature: s.Signature.String(),
			Slot:      s.Slot,
		}
		if s.BlockTime != nil {
			bt := int64(*s.BlockTime)
			info.BlockTime = &bt
		}
		out = append(out, info)
	}
	return out
}

// ConvertParsedTransaction maps a jsonParsed RPC result to the domain view.
// It returns nil for a nil result.
func ConvertParsedTransaction(signature string, res *rpc.GetParsedTransactionResult) *entities.ParsedTransaction {
	if res == nil {
		return nil
	}

	tx := &entities.ParsedTransaction{
		Signature: signature,
		Slot:      res.Slot,
	}
	if res.BlockTime != nil {
		bt := int64(*res.BlockTime)
		tx.BlockTime = &bt
	}

	if res.Transaction != nil {
		msg := res.Transaction.Message

		tx.AccountKeys = make([]string, 0, len(msg.AccountKeys))
		for _, acc := range msg.AccountKeys {
			tx.AccountKeys = append(tx.AccountKeys, acc.PublicKey.String())
		}

		tx.Instructions = make([]entities.ParsedInstruction, 0, len(msg.Instructions))
		for _, ix := range msg.Instructions {
			if ix == nil {
				continue
			}
			tx.Instructions = append(tx.Instructions, convertInstruction(ix))
		}
	}

	if res.Meta != nil {
		tx.Meta = &entities.TransactionMeta{
			Err:          res.Meta.Err,
			Fee:          res.Meta.Fee,
			PreBalances:  append([]uint64(nil), res.Meta.PreBalances...),
			PostBalances: append([]uint64(nil), res.Meta.PostBalances...),
		}
	}

	return tx
}

func convertInstruction(ix *rpc.ParsedInstruction) entities.ParsedInstruction {
	out := entities.ParsedInstruction{
		ProgramID: ix.ProgramId.String(),
		Program:   ix.Program,
	}
	out.Type = instructionType(ix.Parsed)
	return out
}

// instructionType reads the parsed "type" of an instruction. The envelope
// keeps its contents private, so it is decoded from its JSON form. String
// envelopes and unparsed instructions yield "".
func instructionType(env *rpc.InstructionInfoEnvelope) string {
	if env == nil {
		return ""
	}
	raw, err := env.MarshalJSON()
	if err != nil || len(raw) == 0 || raw[0] != '{' {
		return ""
	}
	var info rpc.InstructionInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return ""
	}
	return info.InstructionType
}

// SplitSignatures splits signatures into consecutive batches of at most batchSize
func SplitSignatures(sigs []entities.SignatureInfo, batchSize int) [][]entities.SignatureInfo {
	if len(sigs) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = len(sigs)
	}

	batches := make([][]entities.SignatureInfo, 0, (len(sigs)+batchSize-1)/batchSize)
	for start := 0; start < len(sigs); start += batchSize {
		end := start + batchSize
		if end > len(sigs) {
			end = len(sigs)
		}
		batches = append(batches, sigs[start:end])
	}

	return batches
}
