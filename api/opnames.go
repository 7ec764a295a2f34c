package api

import (
	"fmt"

	"github.com/adrenoasm/a2xx/ir"
)

var vectorOpNames = map[string]ir.VectorOp{
	"addv": ir.ADDv, "mulv": ir.MULv, "maxv": ir.MAXv, "minv": ir.MINv,
	"setev": ir.SETEv, "setgtv": ir.SETGTv, "setgev": ir.SETGEv, "setnev": ir.SETNEv,
	"fracv": ir.FRACv, "truncv": ir.TRUNCv, "floorv": ir.FLOORv, "muladdv": ir.MULADDv,
	"cndev": ir.CNDEv, "cndgtev": ir.CNDGTEv, "cndgtv": ir.CNDGTv,
	"dot4v": ir.DOT4v, "dot3v": ir.DOT3v, "dot2addv": ir.DOT2ADDv, "cubev": ir.CUBEv,
	"max4v": ir.MAX4v, "predsetepushv": ir.PredSetEPushv, "predsetnepushv": ir.PredSetNEPushv,
	"predsetgtpushv": ir.PredSetGTPushv, "predsetgtepushv": ir.PredSetGTEPushv,
	"killev": ir.KillEv, "killgtv": ir.KillGTv, "killgtev": ir.KillGTEv, "killnev": ir.KillNEv,
	"dstv": ir.DSTv, "movav": ir.MOVAv,
}

var scalarOpNames = map[string]ir.ScalarOp{
	"adds": ir.ADDs, "addprevs": ir.AddPrevs, "muls": ir.MULs, "mulprevs": ir.MulPrevs,
	"mulprev2s": ir.MulPrev2s, "maxs": ir.MAXs, "mins": ir.MINs, "setes": ir.SETEs,
	"setgts": ir.SETGTs, "setges": ir.SETGEs, "setnes": ir.SETNEs, "fracs": ir.FRACs,
	"truncs": ir.TRUNCs, "floors": ir.FLOORs, "expieee": ir.ExpIEEE, "logclamp": ir.LogClamp,
	"logieee": ir.LogIEEE, "recipclamp": ir.RecipClamp, "recipff": ir.RecipFF,
	"recipieee": ir.RecipIEEE, "recipsqclamp": ir.RecipSqClamp, "recipsqff": ir.RecipSqFF,
	"recipsqieee": ir.RecipSqIEEE, "movas": ir.MOVAs, "movafloors": ir.MovaFloors,
	"subs": ir.SUBs, "subprevs": ir.SubPrevs, "predsetes": ir.PredSetEs, "predsetnes": ir.PredSetNEs,
	"predsetgts": ir.PredSetGTs, "predsetgtes": ir.PredSetGTEs, "predsetinvs": ir.PredSetInvs,
	"predsetpops": ir.PredSetPops, "predsetclrs": ir.PredSetClrs, "predsetrestores": ir.PredSetRestores,
	"killes": ir.KillEs, "killgts": ir.KillGTs, "killgtes": ir.KillGTEs, "killnes": ir.KillNEs,
	"killones": ir.KillOnes, "sqrtieee": ir.SqrtIEEE, "mulconst0": ir.MulConst0,
	"mulconst1": ir.MulConst1, "addconst0": ir.AddConst0, "addconst1": ir.AddConst1,
	"subconst0": ir.SubConst0, "subconst1": ir.SubConst1, "sin": ir.SIN, "cos": ir.COS,
	"retainprev": ir.RetainPrev,
}

func parseVectorOp(name string) (ir.VectorOp, error) {
	op, ok := vectorOpNames[name]
	if !ok {
		return 0, fmt.Errorf("api: unknown vector opcode %q", name)
	}
	return op, nil
}

func parseScalarOp(name string) (ir.ScalarOp, error) {
	op, ok := scalarOpNames[name]
	if !ok {
		return 0, fmt.Errorf("api: unknown scalar opcode %q", name)
	}
	return op, nil
}

func parseRegFlags(names []string) (ir.RegFlag, error) {
	var flags ir.RegFlag
	for _, n := range names {
		switch n {
		case "const":
			flags |= ir.FlagConst
		case "export":
			flags |= ir.FlagExport
		case "negate":
			flags |= ir.FlagNegate
		case "abs":
			flags |= ir.FlagAbs
		default:
			return 0, fmt.Errorf("api: unknown register flag %q", n)
		}
	}
	return flags, nil
}
